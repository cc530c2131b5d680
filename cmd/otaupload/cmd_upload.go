package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ochairo/otaupload/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/otaupload/internal/domain-orchestrators"
	"github.com/ochairo/otaupload/internal/domain/interfaces"
)

func runUpload(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("upload", pflag.ExitOnError)
	var opts targetOptions
	var verifyOpts gateways.VerifyOptions
	opts.addFlags(fs)
	fs.StringVar(&verifyOpts.ChecksumFile, "checksum", "", "Verify the firmware against a .sha256 file before sending")
	fs.StringVar(&verifyOpts.SignatureFile, "gpg-sig", "", "Verify a detached signature (.asc or .sig) before sending")
	fs.StringVar(&verifyOpts.KeyFile, "gpg-key", "", "Public key used with --gpg-sig")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: otaupload upload [firmware.bin] [options]

Send a built firmware image to the device over the air using the espota tool
shipped with the framework-arduinoespressif32 package. Without a firmware
path the image is taken from .pio/build/<env>/firmware.bin.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  otaupload upload --env esp32dev
  otaupload upload .pio/build/esp32dev/firmware.bin
  otaupload upload firmware.bin --host 192.168.1.40 --port 3232
  otaupload upload firmware.bin --checksum firmware.bin.sha256
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	exitOnError(loadEnv(opts.envFile))

	firmware, err := resolveFirmware(fs.Args(), opts)
	exitOnError(err)

	logger, err := newLogger(opts)
	exitOnError(err)
	defer syncLogger(logger)

	if err := executeUpload(ctx, firmware, opts, verifyOpts, logger); err != nil {
		syncLogger(logger)
		exitOnError(err)
	}
}

// executeUpload verifies the firmware when requested, then hands it to the transfer tool
func executeUpload(ctx context.Context, firmware string, opts targetOptions, verifyOpts gateways.VerifyOptions, logger interfaces.Logger) error {
	target, err := loadTarget(opts)
	if err != nil {
		return err
	}

	if !verifyOpts.Empty() {
		if err := gateways.NewArtifactVerifier(logger).Verify(ctx, firmware, verifyOpts); err != nil {
			return err
		}
	}

	uploadOrch := orchestrators.NewUploadOrchestrator(
		gateways.NewPackageLocator(opts.packagesDir),
		gateways.NewCommandRunner(),
		target,
		logger,
	)

	_, err = uploadOrch.Upload(ctx, firmware)
	return err
}
