package entities

import "time"

// Invocation is the command line handed to the transfer tool
type Invocation struct {
	ID          string
	Interpreter string
	Args        []string // tool path followed by its flags
}

// Argv returns the full argument vector including the interpreter, if any
func (i *Invocation) Argv() []string {
	if i.Interpreter == "" {
		return append([]string(nil), i.Args...)
	}
	argv := make([]string, 0, len(i.Args)+1)
	argv = append(argv, i.Interpreter)
	return append(argv, i.Args...)
}

// InvocationResult contains the outcome of running an invocation
type InvocationResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// UploadResult contains the result of an upload operation
type UploadResult struct {
	Request    UploadRequest
	Invocation *Invocation
	Result     *InvocationResult
	Success    bool
}
