package sandbox

import "testing"

func TestExtractRelevantErrorEmpty(t *testing.T) {
	if got := ExtractRelevantError(""); got != "" {
		t.Errorf("ExtractRelevantError(\"\") = %q, want empty", got)
	}
	if got := ExtractRelevantError("   \n\t\n"); got != "" {
		t.Errorf("whitespace-only input = %q, want empty", got)
	}
}

func TestExtractRelevantErrorNoSourceFrame(t *testing.T) {
	// Interpreter-level failures never mention the ephemeral file; the
	// text passes through untouched.
	raw := "MemoryError: out of memory"
	if got := ExtractRelevantError(raw); got != raw {
		t.Errorf("got %q, want %q", got, raw)
	}
}

func TestExtractRelevantErrorKeepsLastSourceFrame(t *testing.T) {
	raw := `Traceback (most recent call last):
  File "/tmp/submission-8231.py", line 10, in <module>
    main()
  File "/tmp/submission-8231.py", line 7, in main
    x = 1 / 0
ZeroDivisionError: division by zero`

	want := `  File "/tmp/submission-8231.py", line 7, in main
    x = 1 / 0
ZeroDivisionError: division by zero`

	if got := ExtractRelevantError(raw); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExtractRelevantErrorSkipsInterpreterFrames(t *testing.T) {
	// Frames in interpreter or library files above the user's frame are
	// plumbing and get trimmed.
	raw := `Traceback (most recent call last):
  File "/usr/lib/python3.11/runpy.py", line 196, in _run_module_as_main
    return _run_code(code, main_globals, None,
  File "/tmp/submission-4490.py", line 3, in <module>
    print(undefined_name)
NameError: name 'undefined_name' is not defined`

	want := `  File "/tmp/submission-4490.py", line 3, in <module>
    print(undefined_name)
NameError: name 'undefined_name' is not defined`

	if got := ExtractRelevantError(raw); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExtractRelevantErrorNoMatchIsUnchanged(t *testing.T) {
	// Whitespace padding survives when no frame matches; only the matched
	// path reshapes the text.
	raw := "\nSyntaxError: invalid syntax\n\n"
	if got := ExtractRelevantError(raw); got != raw {
		t.Errorf("got %q, want input returned unchanged", got)
	}
}
