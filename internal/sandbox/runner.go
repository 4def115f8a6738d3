package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Sentinel stderr markers for abnormal terminations. The judge surfaces
// them verbatim as the error text of the failing case.
const (
	StderrTimeLimitExceeded = "Time Limit Exceeded"
	StderrMemoryOveruse     = "Memory Overuse"
)

// sourceFilePattern is the CreateTemp pattern for ephemeral source files.
// The stderr extractor keys off the "submission-" prefix, so the two must
// stay in sync.
const sourceFilePattern = "submission-*.py"

// ExecResult is the captured output of one interpreter invocation.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// PythonRunner executes submitted source in a Python subprocess with the
// test case input on stdin and a wall-clock timeout. Invocations are
// independent; the only shared resource is the temp-file namespace, which
// CreateTemp keeps collision-free.
type PythonRunner struct {
	Interpreter string
	Timeout     time.Duration
}

func NewPythonRunner(interpreter string, timeout time.Duration) *PythonRunner {
	if interpreter == "" {
		interpreter = "python3"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PythonRunner{Interpreter: interpreter, Timeout: timeout}
}

// Run writes source to an ephemeral file, runs it once under the timeout
// and captures stdout/stderr. The file is removed on every exit path. A
// timeout yields the Time Limit Exceeded sentinel with exit code -1 and no
// subprocess left running; a SIGKILL'd child (host memory pressure) yields
// the Memory Overuse sentinel.
func (r *PythonRunner) Run(ctx context.Context, source, stdin string) (ExecResult, error) {
	tmp, err := os.CreateTemp("", sourceFilePattern)
	if err != nil {
		return ExecResult{}, fmt.Errorf("creating ephemeral source file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(source); err != nil {
		tmp.Close()
		return ExecResult{}, fmt.Errorf("writing ephemeral source file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ExecResult{}, fmt.Errorf("closing ephemeral source file: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.Interpreter, tmp.Name())
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// CommandContext kills and reaps the child on deadline, so checking the
	// context after Run returns is race-free.
	if runCtx.Err() == context.DeadlineExceeded {
		return ExecResult{Stdout: "", Stderr: StderrTimeLimitExceeded, ExitCode: -1}, nil
	}
	// A canceled parent context (client gone, request timeout) also SIGKILLs
	// the child; that is not a verdict about the program.
	if err := ctx.Err(); err != nil {
		return ExecResult{}, fmt.Errorf("running %s: %w", r.Interpreter, err)
	}

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// Spawn failure, not a program failure.
			return ExecResult{}, fmt.Errorf("running %s: %w", r.Interpreter, runErr)
		}
		exitCode = exitErr.ExitCode()
		// With the context live, a SIGKILL'd child means the host killed it
		// for memory.
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() && ws.Signal() == syscall.SIGKILL {
			return ExecResult{Stdout: "", Stderr: StderrMemoryOveruse, ExitCode: -1}, nil
		}
	}

	return ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}, nil
}
