package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// LookPath reports the resolved path of a binary, as exec.LookPath does.
	LookPath(name string) (string, error)
}
