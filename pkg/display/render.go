/* pkg/display/render.go */

package display

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	MessageRuleWidth = 60
	StatusRuleWidth  = 40
	CommitPreviewLen = 60
)

// Message prints the generated commit message between separator rules.
func Message(w io.Writer, message string) {
	s := NewStyles(w)
	rule := s.Separator.Render(strings.Repeat("=", MessageRuleWidth))

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, s.Title.Render("GENERATED COMMIT MESSAGE"))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, message)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

// StagedFile is one line of the status report.
type StagedFile struct {
	Path    string
	Code    string
	Added   int
	Removed int
}

type StatusReport struct {
	Branch   string
	Staged   []StagedFile
	Unstaged bool
	Recent   []string
}

// Status prints the repository status report.
func Status(w io.Writer, report StatusReport) {
	s := NewStyles(w)

	fmt.Fprintln(w, s.Title.Render("REPOSITORY STATUS"))
	fmt.Fprintln(w, s.Separator.Render(strings.Repeat("-", StatusRuleWidth)))

	branch := report.Branch
	if branch == "" {
		branch = "(detached HEAD)"
	}
	fmt.Fprintf(w, "Branch: %s\n", branch)

	if len(report.Staged) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No staged changes"))
	} else {
		fmt.Fprintf(w, "Staged changes: %d file(s)\n", len(report.Staged))
		for _, f := range report.Staged {
			fmt.Fprintf(w, "   %s %s (%s/%s)\n",
				f.Code, f.Path,
				s.Added.Render(fmt.Sprintf("+%d", f.Added)),
				s.Removed.Render(fmt.Sprintf("-%d", f.Removed)))
		}
	}

	if report.Unstaged {
		fmt.Fprintln(w, s.Warning.Render("Unstaged changes present"))
	}

	if len(report.Recent) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent commits:")
		for i, c := range report.Recent {
			fmt.Fprintf(w, "   %d. %s\n", i+1, Preview(c, CommitPreviewLen))
		}
	}
}

// Check prints one setup check result followed by its remediation hints.
func Check(w io.Writer, ok bool, label string, hints ...string) {
	s := NewStyles(w)
	if ok {
		fmt.Fprintf(w, "%s %s\n", s.Success.Render("✓"), label)
		return
	}
	fmt.Fprintf(w, "%s %s\n", s.Error.Render("✗"), label)
	for _, h := range hints {
		fmt.Fprintf(w, "   %s\n", s.Muted.Render(h))
	}
}

// Preview returns the first line of text cut to max runes, with "..." when cut.
func Preview(text string, max int) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "..."
}
