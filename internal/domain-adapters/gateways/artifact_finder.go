package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Default PlatformIO build layout
const (
	DefaultBuildDir     = ".pio/build"
	DefaultFirmwareName = "firmware.bin"
)

// ArtifactFinder locates firmware images produced by the build
type ArtifactFinder struct {
	buildDir string
}

// NewArtifactFinder creates a finder rooted at buildDir (".pio/build" when empty)
func NewArtifactFinder(buildDir string) *ArtifactFinder {
	if buildDir == "" {
		buildDir = filepath.FromSlash(DefaultBuildDir)
	}
	return &ArtifactFinder{buildDir: buildDir}
}

// FindFirmware returns the firmware image for a build environment.
// With an empty env the build directory must hold exactly one image.
func (f *ArtifactFinder) FindFirmware(env string) (string, error) {
	if _, err := os.Stat(f.buildDir); os.IsNotExist(err) {
		return "", fmt.Errorf("build directory does not exist: %s", f.buildDir)
	}

	if env != "" {
		path := filepath.Join(f.buildDir, env, DefaultFirmwareName)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("firmware not found for environment %s: %w", env, err)
		}
		return path, nil
	}

	matches, err := filepath.Glob(filepath.Join(f.buildDir, "*", DefaultFirmwareName))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s found under %s", DefaultFirmwareName, f.buildDir)
	case 1:
		return matches[0], nil
	default:
		envs := make([]string, 0, len(matches))
		for _, m := range matches {
			envs = append(envs, filepath.Base(filepath.Dir(m)))
		}
		return "", fmt.Errorf("multiple build environments found (%s), pick one with --env", strings.Join(envs, ", "))
	}
}
