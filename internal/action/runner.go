package action

import (
	"bytes"
	"context"
	"os/exec"
)

// OSCommandRunner runs commands via os/exec, exactly as the teacher's
// AI-suggested-command runner did for its shell invocations.
type OSCommandRunner struct{}

func (OSCommandRunner) Run(ctx context.Context, command string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
