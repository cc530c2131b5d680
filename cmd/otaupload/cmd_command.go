package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ochairo/otaupload/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/otaupload/internal/domain-orchestrators"
)

func runCommand(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("command", pflag.ExitOnError)
	var opts targetOptions
	opts.addFlags(fs)
	nullSep := fs.Bool("null", false, "Separate arguments with NUL instead of spaces")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: otaupload command [firmware.bin] [options]

Print the espota command line that "upload" would run, without running it.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	exitOnError(loadEnv(opts.envFile))

	firmware, err := resolveFirmware(fs.Args(), opts)
	exitOnError(err)
	exitOnError(executeCommand(ctx, os.Stdout, firmware, opts, *nullSep))
}

func executeCommand(ctx context.Context, w io.Writer, firmware string, opts targetOptions, nullSep bool) error {
	target, err := loadTarget(opts)
	if err != nil {
		return err
	}

	uploadOrch := orchestrators.NewUploadOrchestrator(
		gateways.NewPackageLocator(opts.packagesDir),
		gateways.NewCommandRunner(),
		target,
		nil,
	)

	inv, err := uploadOrch.Plan(ctx, firmware)
	if err != nil {
		return err
	}

	sep := " "
	if nullSep {
		sep = "\x00"
	}
	_, err = fmt.Fprintln(w, strings.Join(inv.Argv(), sep))
	return err
}
