package sandbox

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func requirePython(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available, skipping runner tests")
	}
	return path
}

func TestRunCapturesStdout(t *testing.T) {
	requirePython(t)
	r := NewPythonRunner("python3", 5*time.Second)

	res, err := r.Run(context.Background(), "print('Hello, World!')", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "Hello, World!\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "Hello, World!\n")
	}
	if res.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", res.ExitCode)
	}
}

func TestRunPipesStdin(t *testing.T) {
	requirePython(t)
	r := NewPythonRunner("python3", 5*time.Second)

	source := "a, b = map(int, input().split())\nprint(a + b)"
	res, err := r.Run(context.Background(), source, "2 3\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "5\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "5\n")
	}
}

func TestRunCapturesStderrAndExitCode(t *testing.T) {
	requirePython(t)
	r := NewPythonRunner("python3", 5*time.Second)

	res, err := r.Run(context.Background(), "raise ValueError('boom')", "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode == 0 {
		t.Error("exit code = 0, want nonzero")
	}
	if !strings.Contains(res.Stderr, "ValueError: boom") {
		t.Errorf("stderr = %q, want traceback containing ValueError", res.Stderr)
	}
	// The traceback must reference the ephemeral file so the extractor
	// can find the user's frame.
	if !sourceFrameRe.MatchString(res.Stderr) {
		t.Errorf("stderr = %q, want a submission-*.py frame", res.Stderr)
	}
}

func TestRunTimeout(t *testing.T) {
	requirePython(t)
	r := NewPythonRunner("python3", 1*time.Second)

	start := time.Now()
	res, err := r.Run(context.Background(), "while True:\n    pass", "")
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stderr != StderrTimeLimitExceeded {
		t.Errorf("stderr = %q, want %q", res.Stderr, StderrTimeLimitExceeded)
	}
	if res.ExitCode != -1 {
		t.Errorf("exit code = %d, want -1", res.ExitCode)
	}
	if res.Stdout != "" {
		t.Errorf("stdout = %q, want empty on timeout", res.Stdout)
	}
	if elapsed > 4*time.Second {
		t.Errorf("run took %v, the subprocess was not killed promptly", elapsed)
	}
}

func TestRunParentCancellationIsNotMemoryOveruse(t *testing.T) {
	requirePython(t)
	r := NewPythonRunner("python3", 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(300 * time.Millisecond)
		cancel()
	}()

	res, err := r.Run(ctx, "import time\ntime.sleep(30)", "")
	if err == nil {
		t.Fatalf("Run = %+v, want error on canceled request", res)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunRemovesEphemeralFile(t *testing.T) {
	requirePython(t)
	r := NewPythonRunner("python3", 5*time.Second)

	source := "import sys\nprint(sys.argv[0])"
	res, err := r.Run(context.Background(), source, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	path := strings.TrimSpace(res.Stdout)
	if !strings.Contains(filepath.Base(path), "submission-") {
		t.Fatalf("unexpected source path %q", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("ephemeral file %s still exists after Run", path)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	r := NewPythonRunner("definitely-not-an-interpreter", time.Second)
	if _, err := r.Run(context.Background(), "print(1)", ""); err == nil {
		t.Fatal("Run with missing interpreter succeeded, want error")
	}
}
