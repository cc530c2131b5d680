package gateways

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ochairo/otaupload/internal/domain/entities"
)

func TestCommandRunner_RunCommand_Success(t *testing.T) {
	r := NewCommandRunner()

	result := r.RunCommand(context.Background(), RunConfig{
		Argv: []string{"/bin/sh", "-c", "echo 'Uploading: 100%'"},
	})

	if !result.Success {
		t.Errorf("RunCommand() failed: %v", result.Error)
	}
	if result.ExitCode != 0 {
		t.Errorf("RunCommand() exit code = %d, want 0", result.ExitCode)
	}
	if result.Stdout != "Uploading: 100%\n" {
		t.Errorf("RunCommand() stdout = %q, want %q", result.Stdout, "Uploading: 100%\n")
	}
}

func TestCommandRunner_RunCommand_Failure(t *testing.T) {
	r := NewCommandRunner()

	result := r.RunCommand(context.Background(), RunConfig{
		Argv: []string{"/bin/sh", "-c", "echo 'No response from device' >&2; exit 42"},
	})

	if result.Success {
		t.Error("RunCommand() should have failed")
	}
	if result.ExitCode != 42 {
		t.Errorf("RunCommand() exit code = %d, want 42", result.ExitCode)
	}
	if result.Stderr != "No response from device\n" {
		t.Errorf("RunCommand() stderr = %q", result.Stderr)
	}
	if result.Error == nil {
		t.Error("RunCommand() should set Error on non-zero exit")
	}
}

func TestCommandRunner_RunCommand_SeparatesStreams(t *testing.T) {
	r := NewCommandRunner()

	result := r.RunCommand(context.Background(), RunConfig{
		Argv: []string{"/bin/sh", "-c", "echo out; echo err >&2"},
	})

	if !result.Success {
		t.Fatalf("RunCommand() failed: %v", result.Error)
	}
	if result.Stdout != "out\n" {
		t.Errorf("stdout = %q, want %q", result.Stdout, "out\n")
	}
	if result.Stderr != "err\n" {
		t.Errorf("stderr = %q, want %q", result.Stderr, "err\n")
	}
}

func TestCommandRunner_RunCommand_MissingBinary(t *testing.T) {
	r := NewCommandRunner()

	result := r.RunCommand(context.Background(), RunConfig{
		Argv: []string{filepath.Join(t.TempDir(), "does-not-exist")},
	})

	if result.Success {
		t.Error("RunCommand() should fail for a missing binary")
	}
	if result.ExitCode != -1 {
		t.Errorf("RunCommand() exit code = %d, want -1", result.ExitCode)
	}
}

func TestCommandRunner_RunCommand_EmptyArgv(t *testing.T) {
	r := NewCommandRunner()

	result := r.RunCommand(context.Background(), RunConfig{})

	if result.Success || result.Error == nil {
		t.Error("RunCommand() should reject an empty command")
	}
}

func TestCommandRunner_RunCommand_Timeout(t *testing.T) {
	r := NewCommandRunner()

	start := time.Now()
	result := r.RunCommand(context.Background(), RunConfig{
		Argv:    []string{"/bin/sh", "-c", "sleep 5; echo done"},
		Timeout: 100 * time.Millisecond,
	})
	elapsed := time.Since(start)

	if result.Success {
		t.Error("RunCommand() should have timed out")
	}
	if result.ExitCode != -1 {
		t.Errorf("RunCommand() exit code = %d, want -1", result.ExitCode)
	}
	if result.Error == nil || !strings.Contains(result.Error.Error(), "command timeout after 100ms") {
		t.Errorf("RunCommand() error = %v, want timeout error", result.Error)
	}
	if !errors.Is(result.Error, context.DeadlineExceeded) {
		t.Errorf("RunCommand() error = %v, want context.DeadlineExceeded", result.Error)
	}
	if elapsed > 4*time.Second {
		t.Errorf("RunCommand() returned after %v, want well under the 5s sleep", elapsed)
	}
}

func TestCommandRunner_RunCommand_Cancelled(t *testing.T) {
	r := NewCommandRunner()

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(100*time.Millisecond, cancel)
	defer timer.Stop()

	start := time.Now()
	result := r.RunCommand(ctx, RunConfig{
		Argv: []string{"/bin/sh", "-c", "sleep 5; echo done"},
	})
	elapsed := time.Since(start)

	if result.Success {
		t.Error("RunCommand() should have been cancelled")
	}
	if !errors.Is(result.Error, context.Canceled) {
		t.Errorf("RunCommand() error = %v, want context.Canceled", result.Error)
	}
	if elapsed > 4*time.Second {
		t.Errorf("RunCommand() returned after %v, want well under the 5s sleep", elapsed)
	}
}

func TestCommandRunner_RunCommand_EnvAndWorkingDir(t *testing.T) {
	r := NewCommandRunner()
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, "firmware.bin"), []byte("fw"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	result := r.RunCommand(context.Background(), RunConfig{
		Argv:       []string{"/bin/sh", "-c", "ls firmware.bin; echo $OTA_TEST"},
		WorkingDir: tempDir,
		Env:        map[string]string{"OTA_TEST": "value"},
	})

	if !result.Success {
		t.Fatalf("RunCommand() failed: %v", result.Error)
	}
	if result.Stdout != "firmware.bin\nvalue\n" {
		t.Errorf("RunCommand() stdout = %q", result.Stdout)
	}
}

func TestCommandRunner_Run_UsesInterpreter(t *testing.T) {
	r := NewCommandRunner()
	script := filepath.Join(t.TempDir(), "espota.py")
	if err := os.WriteFile(script, []byte(`echo "args: $*"`), 0600); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}

	result := r.Run(context.Background(), &entities.Invocation{
		Interpreter: "/bin/sh",
		Args:        []string{script, "-i", "10.0.0.1", "-d"},
	})

	if !result.Success {
		t.Fatalf("Run() failed: %v", result.Error)
	}
	if result.Stdout != "args: -i 10.0.0.1 -d\n" {
		t.Errorf("Run() stdout = %q", result.Stdout)
	}
}
