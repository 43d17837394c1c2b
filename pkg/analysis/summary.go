// Package analysis turns staged change records and recent history into the
// document handed to the commit message pipeline.
package analysis

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/git"
	"gopkg.in/yaml.v3"
)

// NoChangesText is rendered when nothing is staged.
const NoChangesText = "No staged changes found."

// Limits bounds how much history and diff text reaches the model.
type Limits struct {
	RecentCommits     int
	MaxDiffBytes      int
	MaxTotalDiffBytes int
}

func DefaultLimits() Limits {
	return Limits{
		RecentCommits:     3,
		MaxDiffBytes:      4000,
		MaxTotalDiffBytes: 16000,
	}
}

type FileChange struct {
	Path         string `yaml:"path"`
	From         string `yaml:"from,omitempty"`
	LinesAdded   int    `yaml:"lines_added"`
	LinesRemoved int    `yaml:"lines_removed"`
}

type DiffExcerpt struct {
	Path      string `yaml:"path"`
	Truncated bool   `yaml:"truncated,omitempty"`
	Diff      string `yaml:"diff"`
}

// Summary is the analysis document. Field order is the rendered order.
type Summary struct {
	TotalFiles     int                     `yaml:"total_files"`
	LinesAdded     int                     `yaml:"lines_added"`
	LinesRemoved   int                     `yaml:"lines_removed"`
	FilesByType    map[string][]FileChange `yaml:"files_by_type"`
	FileExtensions map[string]int          `yaml:"file_extensions"`
	ChangesSummary []string                `yaml:"changes_summary"`
	RecentCommits  []string                `yaml:"recent_commits"`
	Diffs          []DiffExcerpt           `yaml:"diffs,omitempty"`
	OmittedDiffs   int                     `yaml:"omitted_diffs,omitempty"`
}

// Summarize groups changes by kind, keeps at most limits.RecentCommits messages
// and attaches diff excerpts within the byte budgets.
func Summarize(changes []git.ChangeRecord, recent []string, limits Limits) *Summary {
	s := &Summary{
		TotalFiles:     len(changes),
		FilesByType:    make(map[string][]FileChange),
		FileExtensions: make(map[string]int),
		ChangesSummary: make([]string, 0, len(changes)),
		RecentCommits:  []string{},
	}

	budget := limits.MaxTotalDiffBytes
	for _, c := range changes {
		s.LinesAdded += c.LinesAdded
		s.LinesRemoved += c.LinesRemoved

		label := c.Kind.Label()
		s.FilesByType[label] = append(s.FilesByType[label], FileChange{
			Path:         c.FilePath,
			From:         c.OldPath,
			LinesAdded:   c.LinesAdded,
			LinesRemoved: c.LinesRemoved,
		})
		s.FileExtensions[extension(c.FilePath)]++
		s.ChangesSummary = append(s.ChangesSummary, ChangeLine(c))

		if c.Diff == "" {
			continue
		}
		if budget <= 0 {
			s.OmittedDiffs++
			continue
		}
		limit := min(limits.MaxDiffBytes, budget)
		text, truncated := truncate(c.Diff, limit)
		budget -= len(text)
		s.Diffs = append(s.Diffs, DiffExcerpt{Path: c.FilePath, Truncated: truncated, Diff: text})
	}

	n := min(len(recent), limits.RecentCommits)
	if n > 0 {
		s.RecentCommits = append(s.RecentCommits, recent[:n]...)
	}
	return s
}

// ChangeLine renders "path (label) - +A/-R lines", omitting the counts when both are zero.
func ChangeLine(c git.ChangeRecord) string {
	line := fmt.Sprintf("%s (%s)", c.FilePath, c.Kind.Label())
	if c.LinesAdded == 0 && c.LinesRemoved == 0 {
		return line
	}
	return fmt.Sprintf("%s - +%d/-%d lines", line, c.LinesAdded, c.LinesRemoved)
}

// Render returns the YAML form of the summary.
func (s *Summary) Render() (string, error) {
	if s == nil || s.TotalFiles == 0 {
		return NoChangesText, nil
	}
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to render change summary: %w", err)
	}
	return string(out), nil
}

func extension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "no-ext"
	}
	return ext
}

// truncate cuts s to at most limit bytes, preferring a line boundary.
func truncate(s string, limit int) (string, bool) {
	if limit <= 0 {
		return "", s != ""
	}
	if len(s) <= limit {
		return s, false
	}
	cut := s[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		return cut[:i+1], true
	}
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut, true
}
