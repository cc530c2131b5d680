// Package main provides the otaupload CLI, a drop-in OTA replacement for the firmware upload step.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "upload":
		runUpload(ctx, os.Args[2:])
	case "command":
		runCommand(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`otaupload - Over-the-air firmware upload for ESP32 builds

Usage:
  otaupload <command> [options]

Commands:
  upload    Send a firmware image to the device with espota
  command   Print the espota command line without running it
  verify    Check a firmware image against a checksum or signature

Use "otaupload <command> --help" for more information about a command.`)
}

// exitOnError prints err and terminates the process with status 1
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
