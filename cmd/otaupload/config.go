package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/ochairo/otaupload/internal/domain-adapters/gateways"
	"github.com/ochairo/otaupload/internal/domain/entities"
	"github.com/ochairo/otaupload/internal/domain/interfaces"
	"github.com/ochairo/otaupload/internal/external-adapters/yaml"
	"github.com/ochairo/otaupload/internal/external-adapters/zaplog"
)

// targetOptions holds the flags shared by commands that talk to the device
type targetOptions struct {
	configPath  string
	envFile     string
	host        string
	port        int
	packagesDir string
	buildDir    string
	buildEnv    string
	logLevel    string
	jsonLogs    bool
}

func (o *targetOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "Target profile (default: ./"+yaml.DefaultProfileFile+" when present)")
	fs.StringVar(&o.envFile, "env-file", ".env", "Environment file loaded before resolving packages")
	fs.StringVarP(&o.host, "host", "i", "", "Override the device address")
	fs.IntVarP(&o.port, "port", "p", 0, "Override the device OTA port")
	fs.StringVar(&o.packagesDir, "packages-dir", "", "PlatformIO packages directory (default: $PLATFORMIO_CORE_DIR/packages)")
	fs.StringVar(&o.buildDir, "build-dir", gateways.DefaultBuildDir, "Build output searched when no firmware path is given")
	fs.StringVarP(&o.buildEnv, "env", "e", "", "Build environment whose firmware.bin is sent")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&o.jsonLogs, "json-logs", false, "Emit JSON log records")
}

// loadEnv reads the env file when it exists; variables already set win
func loadEnv(path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// loadTarget resolves the upload target from the profile and flag overrides
func loadTarget(opts targetOptions) (entities.UploadTarget, error) {
	target := entities.DefaultUploadTarget()
	parser := yaml.NewTargetParser()

	profile := opts.configPath
	if profile == "" && fileExists(yaml.DefaultProfileFile) {
		profile = yaml.DefaultProfileFile
	}

	if profile != "" {
		parsed, err := parser.ParseFile(profile)
		if err != nil {
			return entities.UploadTarget{}, fmt.Errorf("failed to load target profile: %w", err)
		}
		target = parsed
	}

	if opts.host != "" {
		target.Host = opts.host
	}
	if opts.port != 0 {
		target.Port = opts.port
	}

	if err := yaml.ValidateTarget(target); err != nil {
		return entities.UploadTarget{}, err
	}
	return target, nil
}

// resolveFirmware returns the positional firmware path or the one found in the build output
func resolveFirmware(args []string, opts targetOptions) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return gateways.NewArtifactFinder(opts.buildDir).FindFirmware(opts.buildEnv)
}

func newLogger(opts targetOptions) (*zaplog.Logger, error) {
	return zaplog.New(zaplog.Config{Level: opts.logLevel, JSON: opts.jsonLogs})
}

// syncLogger flushes the logger; stdout sync errors on terminals are not actionable
func syncLogger(logger interfaces.Logger) {
	if l, ok := logger.(*zaplog.Logger); ok {
		_ = l.Sync()
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
