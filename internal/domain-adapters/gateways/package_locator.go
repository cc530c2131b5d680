package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// PlatformIOCoreDirEnv overrides the PlatformIO core directory
const PlatformIOCoreDirEnv = "PLATFORMIO_CORE_DIR"

// PackageLocator finds installed toolchain packages in a PlatformIO-style layout
type PackageLocator struct {
	packagesDir string
}

// NewPackageLocator creates a locator rooted at packagesDir.
// An empty packagesDir is resolved from the environment on each lookup.
func NewPackageLocator(packagesDir string) *PackageLocator {
	return &PackageLocator{packagesDir: packagesDir}
}

// DefaultPackagesDir returns $PLATFORMIO_CORE_DIR/packages or ~/.platformio/packages
func DefaultPackagesDir() (string, error) {
	if coreDir := os.Getenv(PlatformIOCoreDirEnv); coreDir != "" {
		return filepath.Join(coreDir, "packages"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".platformio", "packages"), nil
}

// GetPackageDir returns the installed directory of a named package
func (l *PackageLocator) GetPackageDir(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("package name is required")
	}

	packagesDir := l.packagesDir
	if packagesDir == "" {
		dir, err := DefaultPackagesDir()
		if err != nil {
			return "", err
		}
		packagesDir = dir
	}

	packageDir := filepath.Join(packagesDir, name)
	if !isDirectory(packageDir) {
		return "", fmt.Errorf("package not installed: %s (looked in %s)", name, packagesDir)
	}

	return packageDir, nil
}

// ResolveTool returns the path of a tool shipped inside a package
func (l *PackageLocator) ResolveTool(ctx context.Context, packageName, toolPath string) (string, error) {
	packageDir, err := l.GetPackageDir(ctx, packageName)
	if err != nil {
		return "", err
	}

	path := filepath.Join(packageDir, filepath.FromSlash(toolPath))
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("tool not found: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("tool path is a directory: %s", path)
	}

	return path, nil
}

// isDirectory checks if a path is a directory
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
