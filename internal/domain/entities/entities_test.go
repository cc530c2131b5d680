package entities

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultUploadTarget(t *testing.T) {
	target := DefaultUploadTarget()

	if target.Host != "192.168.1.252" {
		t.Errorf("Host = %q, want 192.168.1.252", target.Host)
	}
	if target.Port != 3232 {
		t.Errorf("Port = %d, want 3232", target.Port)
	}
	if target.FrameworkPackage != "framework-arduinoespressif32" {
		t.Errorf("FrameworkPackage = %q", target.FrameworkPackage)
	}
	if target.ToolPath != "tools/espota.py" {
		t.Errorf("ToolPath = %q", target.ToolPath)
	}
}

func TestUploadTarget_Request(t *testing.T) {
	req := DefaultUploadTarget().Request("/build/firmware.bin")

	want := UploadRequest{ArtifactPath: "/build/firmware.bin", Host: DefaultHost, Port: DefaultPort}
	if req != want {
		t.Errorf("Request() = %+v, want %+v", req, want)
	}
}

func TestInvocation_Argv(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
		want []string
	}{
		{
			name: "with interpreter",
			inv:  Invocation{Interpreter: "python3", Args: []string{"espota.py", "-d"}},
			want: []string{"python3", "espota.py", "-d"},
		},
		{
			name: "direct",
			inv:  Invocation{Args: []string{"espota", "-d"}},
			want: []string{"espota", "-d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.inv.Argv()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Argv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvocation_ArgvDoesNotAliasArgs(t *testing.T) {
	inv := Invocation{Args: []string{"espota", "-d"}}
	argv := inv.Argv()
	argv[0] = "changed"

	if inv.Args[0] != "espota" {
		t.Errorf("Argv() shares backing array with Args")
	}
}

func TestErrors_Unwrap(t *testing.T) {
	resErr := &ResolutionError{Package: "pkg", Tool: "tools/espota.py", Err: os.ErrNotExist}
	if !errors.Is(resErr, os.ErrNotExist) {
		t.Error("ResolutionError should unwrap to the locator error")
	}
	if !strings.Contains(resErr.Error(), "tools/espota.py") {
		t.Errorf("ResolutionError message = %q", resErr.Error())
	}

	var wrapped error = &TransferError{ExitCode: 2}
	var transferErr *TransferError
	if !errors.As(wrapped, &transferErr) {
		t.Fatal("errors.As should match *TransferError")
	}
	if transferErr.Error() != "OTA transfer failed (exit 2)" {
		t.Errorf("TransferError message = %q", transferErr.Error())
	}
}

func TestTransferError_IncludesInvocationID(t *testing.T) {
	err := &TransferError{
		InvocationID: "6f1c2b9e-3d5a-4c1e-9b7f-0a2d4e6f8a10",
		ExitCode:     1,
		Err:          errors.New("exit status 1"),
	}

	want := "OTA transfer 6f1c2b9e-3d5a-4c1e-9b7f-0a2d4e6f8a10 failed (exit 1): exit status 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
