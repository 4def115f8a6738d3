package sandbox

import (
	"regexp"
	"strings"
)

// Matches traceback lines that reference the ephemeral source file written
// by the runner (see sourceFilePattern).
var sourceFrameRe = regexp.MustCompile(`File ".*submission-[^"]*\.py"`)

// ExtractRelevantError trims interpreter plumbing off a raw stderr trace.
// Tracebacks walk outermost-first, so the last frame referencing the
// ephemeral file is where the user's own code failed; everything from that
// line onward is returned. When no such frame exists the text is returned
// unchanged, and empty input yields an empty string.
func ExtractRelevantError(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	start := -1
	for i, line := range lines {
		if sourceFrameRe.MatchString(line) {
			start = i
		}
	}
	if start < 0 {
		return raw
	}
	return strings.Join(lines[start:], "\n")
}
