package entities

import "fmt"

// ResolutionError reports that the transfer tool could not be located
type ResolutionError struct {
	Package string
	Tool    string
	Err     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to locate %s in package %s: %v", e.Tool, e.Package, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// TransferError reports that the transfer tool did not complete successfully
type TransferError struct {
	InvocationID string
	ExitCode     int
	Stdout       string
	Stderr       string
	Err          error
}

func (e *TransferError) Error() string {
	msg := "OTA transfer failed"
	if e.InvocationID != "" {
		msg = fmt.Sprintf("OTA transfer %s failed", e.InvocationID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (exit %d): %v", msg, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
