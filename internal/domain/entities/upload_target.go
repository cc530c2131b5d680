// Package entities defines core domain models and data structures.
package entities

// Default values for an OTA upload target
const (
	DefaultHost             = "192.168.1.252"
	DefaultPort             = 3232
	DefaultFrameworkPackage = "framework-arduinoespressif32"
	DefaultToolPath         = "tools/espota.py"
	DefaultInterpreter      = "python3"
)

// UploadTarget describes the device and the transfer tool used to reach it
type UploadTarget struct {
	Host             string
	Port             int
	FrameworkPackage string // package directory holding the transfer tool
	ToolPath         string // tool path relative to the package directory
	Interpreter      string // empty runs the tool directly
}

// DefaultUploadTarget returns the ESP32 target the build pipeline uploads to
func DefaultUploadTarget() UploadTarget {
	return UploadTarget{
		Host:             DefaultHost,
		Port:             DefaultPort,
		FrameworkPackage: DefaultFrameworkPackage,
		ToolPath:         DefaultToolPath,
		Interpreter:      DefaultInterpreter,
	}
}

// UploadRequest represents a single firmware upload
type UploadRequest struct {
	ArtifactPath string
	Host         string
	Port         int
}

// Request builds an upload request for the given artifact against this target
func (t UploadTarget) Request(artifactPath string) UploadRequest {
	return UploadRequest{
		ArtifactPath: artifactPath,
		Host:         t.Host,
		Port:         t.Port,
	}
}
