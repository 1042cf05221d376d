package hooks

import (
	"context"
	"os/exec"
)

// CommandRunner executes an external tool and captures its combined
// stdout/stderr. The pipeline depends on this interface so tests can
// substitute canned exit codes and output without spawning processes.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (output string, err error)
}

// ExecRunner runs tools as OS processes. The zero value is ready to use.
type ExecRunner struct{}

// Run executes name with args in dir, blocking until the process exits.
// The returned output is the combined stdout and stderr, captured even
// when the process fails.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
