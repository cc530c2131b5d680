// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"strings"

	"github.com/ochairo/otaupload/internal/domain/entities"
	"github.com/ochairo/otaupload/internal/domain/interfaces"
	"github.com/ochairo/otaupload/internal/domain/interfaces/gateways"
	"github.com/ochairo/otaupload/internal/domain/services"
)

// UploadOrchestrator replaces the serial upload step with an OTA transfer
type UploadOrchestrator struct {
	locator gateways.PackageLocator
	runner  gateways.CommandRunner
	target  entities.UploadTarget
	logger  interfaces.Logger
}

// NewUploadOrchestrator creates a new upload orchestrator
func NewUploadOrchestrator(
	locator gateways.PackageLocator,
	runner gateways.CommandRunner,
	target entities.UploadTarget,
	logger interfaces.Logger,
) *UploadOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &UploadOrchestrator{
		locator: locator,
		runner:  runner,
		target:  target,
		logger:  logger,
	}
}

// Plan resolves the transfer tool and builds the invocation for an artifact
// without running it. A lookup failure is returned as *entities.ResolutionError.
func (o *UploadOrchestrator) Plan(ctx context.Context, artifactPath string) (*entities.Invocation, error) {
	toolPath, err := o.locator.ResolveTool(ctx, o.target.FrameworkPackage, o.target.ToolPath)
	if err != nil {
		return nil, &entities.ResolutionError{
			Package: o.target.FrameworkPackage,
			Tool:    o.target.ToolPath,
			Err:     err,
		}
	}

	req := o.target.Request(artifactPath)
	return services.BuildInvocation(toolPath, o.target.Interpreter, req), nil
}

// Upload transfers a built firmware image to the target device.
// It returns *entities.ResolutionError when the tool cannot be found and
// *entities.TransferError when the tool does not exit cleanly.
func (o *UploadOrchestrator) Upload(ctx context.Context, artifactPath string) (*entities.UploadResult, error) {
	result := &entities.UploadResult{Request: o.target.Request(artifactPath)}

	o.logger.Info("Starting OTA upload",
		interfaces.F("firmware", artifactPath),
		interfaces.F("host", o.target.Host),
		interfaces.F("port", o.target.Port))

	inv, err := o.Plan(ctx, artifactPath)
	if err != nil {
		o.logger.Error("OTA upload failed", interfaces.F("error", err))
		return result, err
	}
	result.Invocation = inv

	o.logger.Info("Running command",
		interfaces.F("command", services.CommandLine(inv)),
		interfaces.F("invocation", inv.ID))

	runResult := o.runner.Run(ctx, inv)
	result.Result = runResult

	if runResult.Success {
		o.logger.Info("OTA upload result", interfaces.F("output", trimOutput(runResult.Stdout)))
		if strings.TrimSpace(runResult.Stderr) != "" {
			o.logger.Warn("OTA upload reported errors", interfaces.F("stderr", trimOutput(runResult.Stderr)))
		}
		o.logger.Info("OTA upload completed successfully",
			interfaces.F("invocation", inv.ID),
			interfaces.F("duration", runResult.Duration))
		result.Success = true
		return result, nil
	}

	transferErr := &entities.TransferError{
		InvocationID: inv.ID,
		ExitCode:     runResult.ExitCode,
		Stdout:       runResult.Stdout,
		Stderr:       runResult.Stderr,
		Err:          runResult.Error,
	}
	o.logger.Error("OTA upload failed",
		interfaces.F("invocation", inv.ID),
		interfaces.F("exit_code", runResult.ExitCode),
		interfaces.F("error", transferErr))
	o.logger.Error("Output", interfaces.F("stdout", trimOutput(runResult.Stdout)))
	o.logger.Error("Error", interfaces.F("stderr", trimOutput(runResult.Stderr)))

	return result, transferErr
}

func trimOutput(s string) string {
	return strings.TrimRight(s, "\r\n")
}
