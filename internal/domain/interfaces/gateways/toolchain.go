// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/otaupload/internal/domain/entities"
)

// PackageLocator resolves files inside the build environment's installed packages
type PackageLocator interface {
	// GetPackageDir returns the installed directory of a named package
	GetPackageDir(ctx context.Context, name string) (string, error)

	// ResolveTool returns the path of a tool shipped inside a package
	ResolveTool(ctx context.Context, packageName, toolPath string) (string, error)
}

// CommandRunner runs an invocation as a child process and waits for it to exit
type CommandRunner interface {
	Run(ctx context.Context, inv *entities.Invocation) *entities.InvocationResult
}
