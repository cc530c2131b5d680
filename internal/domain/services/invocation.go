// Package services implements domain business logic and use cases.
package services

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ochairo/otaupload/internal/domain/entities"
)

// Transfer tool flags
const (
	FlagHost     = "-i"
	FlagPort     = "-p"
	FlagFirmware = "-f"
	FlagDebug    = "-d"
)

// BuildInvocation builds the transfer tool command line for an upload request.
// Args always read: tool, -i host, -p port, -f artifact, -d.
func BuildInvocation(toolPath, interpreter string, req entities.UploadRequest) *entities.Invocation {
	return &entities.Invocation{
		ID:          uuid.NewString(),
		Interpreter: interpreter,
		Args: []string{
			toolPath,
			FlagHost, req.Host,
			FlagPort, strconv.Itoa(req.Port),
			FlagFirmware, req.ArtifactPath,
			FlagDebug,
		},
	}
}

// CommandLine renders an invocation for display
func CommandLine(inv *entities.Invocation) string {
	return strings.Join(inv.Argv(), " ")
}
