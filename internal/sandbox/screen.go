package sandbox

import (
	"fmt"
	"regexp"
)

// Screening categories. The hint prompt builder matches on these exact
// strings, so they must stay stable.
const (
	CategoryForbiddenCommand = "Forbidden Command"
	CategoryFileOperation    = "File Operation"
	CategoryExitFunction     = "Exit Function"
)

// Violation is a screening rejection: the category of the deny-listed
// construct and a message naming it.
type Violation struct {
	Category string
	Message  string
}

type denyRule struct {
	pattern  *regexp.Regexp
	category string
	name     string
}

// The deny-list is a best-effort raw-text scan, not a parse. It covers the
// common spellings of each dangerous capability; aliased or dynamically
// built calls will slip through.
var denyRules = []denyRule{
	{regexp.MustCompile(`(?m)^\s*(import|from)\s+os\b`), CategoryForbiddenCommand, "os module"},
	{regexp.MustCompile(`(?m)^\s*(import|from)\s+subprocess\b`), CategoryForbiddenCommand, "subprocess module"},
	{regexp.MustCompile(`(?m)^\s*(import|from)\s+shutil\b`), CategoryForbiddenCommand, "shutil module"},
	{regexp.MustCompile(`(?m)^\s*(import|from)\s+socket\b`), CategoryForbiddenCommand, "socket module"},
	{regexp.MustCompile(`__import__\s*\(`), CategoryForbiddenCommand, "__import__ call"},
	{regexp.MustCompile(`\beval\s*\(`), CategoryForbiddenCommand, "eval call"},
	{regexp.MustCompile(`\bexec\s*\(`), CategoryForbiddenCommand, "exec call"},

	{regexp.MustCompile(`\bopen\s*\(`), CategoryFileOperation, "open call"},
	{regexp.MustCompile(`(?m)^\s*(import|from)\s+pathlib\b`), CategoryFileOperation, "pathlib module"},

	{regexp.MustCompile(`\bexit\s*\(`), CategoryExitFunction, "exit call"},
	{regexp.MustCompile(`\bquit\s*\(`), CategoryExitFunction, "quit call"},
	{regexp.MustCompile(`\bsys\.exit\b`), CategoryExitFunction, "sys.exit call"},
	{regexp.MustCompile(`\bos\._exit\b`), CategoryExitFunction, "os._exit call"},
}

// Screen scans submitted source text against the deny-list before any
// execution. It returns the first violation found, or nil when the source
// is approved. The scan never executes or parses the code.
func Screen(source string) *Violation {
	for _, rule := range denyRules {
		if rule.pattern.MatchString(source) {
			return &Violation{
				Category: rule.category,
				Message:  fmt.Sprintf("forbidden construct detected: %s", rule.name),
			}
		}
	}
	return nil
}
