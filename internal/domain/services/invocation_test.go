package services

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/ochairo/otaupload/internal/domain/entities"
)

func TestBuildInvocation_ArgumentOrder(t *testing.T) {
	req := entities.DefaultUploadTarget().Request("/build/firmware.bin")

	inv := BuildInvocation("/pkgs/tools/espota.py", "python3", req)

	want := []string{
		"/pkgs/tools/espota.py",
		"-i", "192.168.1.252",
		"-p", "3232",
		"-f", "/build/firmware.bin",
		"-d",
	}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Errorf("Args = %v, want %v", inv.Args, want)
	}
	if inv.Interpreter != "python3" {
		t.Errorf("Interpreter = %q, want python3", inv.Interpreter)
	}
}

func TestBuildInvocation_EndsWithFirmwareAndDebug(t *testing.T) {
	paths := []string{
		"/build/firmware.bin",
		".pio/build/esp32dev/firmware.bin",
		"/tmp/with space/firmware.bin",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			inv := BuildInvocation("espota.py", "", entities.DefaultUploadTarget().Request(path))

			n := len(inv.Args)
			got := inv.Args[n-3:]
			want := []string{"-f", path, "-d"}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Args tail = %v, want %v", got, want)
			}
		})
	}
}

func TestBuildInvocation_UsesConfiguredHostAndPort(t *testing.T) {
	for i := 0; i < 3; i++ {
		inv := BuildInvocation("espota.py", "", entities.DefaultUploadTarget().Request("fw.bin"))
		if inv.Args[2] != entities.DefaultHost {
			t.Errorf("host = %q, want %q", inv.Args[2], entities.DefaultHost)
		}
		if inv.Args[4] != "3232" {
			t.Errorf("port = %q, want 3232", inv.Args[4])
		}
	}
}

func TestBuildInvocation_AssignsID(t *testing.T) {
	req := entities.DefaultUploadTarget().Request("fw.bin")
	a := BuildInvocation("espota.py", "", req)
	b := BuildInvocation("espota.py", "", req)

	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", a.ID, err)
	}
	if a.ID == b.ID {
		t.Error("each invocation should get its own ID")
	}
}

func TestCommandLine(t *testing.T) {
	inv := &entities.Invocation{Interpreter: "python3", Args: []string{"espota.py", "-d"}}

	if got := CommandLine(inv); got != "python3 espota.py -d" {
		t.Errorf("CommandLine() = %q", got)
	}
}
