package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ochairo/otaupload/internal/domain-adapters/gateways"
	"github.com/ochairo/otaupload/internal/domain/interfaces"
)

func runVerify(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("verify", pflag.ExitOnError)
	var verifyOpts gateways.VerifyOptions
	var logOpts targetOptions
	verifyAll := fs.Bool("all", false, "Use <firmware>.sha256 and <firmware>.asc when present")
	fs.StringVar(&verifyOpts.ChecksumFile, "checksum", "", "Checksum file to verify against (.sha256)")
	fs.StringVar(&verifyOpts.SignatureFile, "gpg-sig", "", "Detached signature file (.asc or .sig)")
	fs.StringVar(&verifyOpts.KeyFile, "gpg-key", "", "Public key file for --gpg-sig")
	fs.StringVar(&logOpts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&logOpts.jsonLogs, "json-logs", false, "Emit JSON log records")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: otaupload verify <firmware.bin> [options]

Check a firmware image before sending it to a device.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  otaupload verify firmware.bin --checksum firmware.bin.sha256
  otaupload verify firmware.bin --gpg-sig firmware.bin.asc --gpg-key release.asc
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: firmware path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	logger, err := newLogger(logOpts)
	exitOnError(err)
	defer syncLogger(logger)

	filePath := fs.Arg(0)
	if *verifyAll {
		verifyOpts = detectVerifyFiles(filePath, verifyOpts)
	}

	if err := executeVerify(ctx, filePath, verifyOpts, logger); err != nil {
		syncLogger(logger)
		exitOnError(err)
	}
}

// detectVerifyFiles fills in checksum and signature files found next to the firmware
func detectVerifyFiles(filePath string, opts gateways.VerifyOptions) gateways.VerifyOptions {
	if opts.ChecksumFile == "" && fileExists(filePath+".sha256") {
		opts.ChecksumFile = filePath + ".sha256"
	}
	if opts.SignatureFile == "" {
		if fileExists(filePath + ".asc") {
			opts.SignatureFile = filePath + ".asc"
		} else if fileExists(filePath + ".sig") {
			opts.SignatureFile = filePath + ".sig"
		}
	}
	return opts
}

func executeVerify(ctx context.Context, filePath string, opts gateways.VerifyOptions, logger interfaces.Logger) error {
	if !fileExists(filePath) {
		return fmt.Errorf("firmware not found: %s", filePath)
	}
	return gateways.NewArtifactVerifier(logger).Verify(ctx, filePath, opts)
}
