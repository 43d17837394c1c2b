package commitmsg

import (
	"fmt"
	"regexp"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
)

// MaxHeaderLength is the longest header Validate accepts.
const MaxHeaderLength = 72

// ValidTypes are the Conventional Commits types commitia accepts.
var ValidTypes = []string{"feat", "fix", "docs", "style", "refactor", "test", "chore", "perf", "ci", "build", "revert"}

var (
	headerPattern  = regexp.MustCompile(`^([A-Za-z]+)(?:\(([^()\r\n]*)\))?(!)?:\s*(.*)$`)
	preamblePrefix = []string{"commit message:", "suggested commit message:", "here is the commit message:"}
)

type Message struct {
	Header      string
	Type        string
	Scope       string
	Breaking    bool
	Description string
	Body        string
}

func (m Message) String() string {
	if m.Body == "" {
		return m.Header
	}
	return m.Header + "\n\n" + m.Body
}

// Clean strips what models commonly wrap around a commit message: code fences,
// surrounding quotes and a "Commit message:" preamble.
func Clean(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))

	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	}

	first, rest, _ := strings.Cut(s, "\n")
	lower := strings.ToLower(strings.TrimSpace(first))
	for _, p := range preamblePrefix {
		if strings.HasPrefix(lower, p) {
			remainder := strings.TrimSpace(strings.TrimSpace(first)[len(p):])
			if remainder == "" {
				s = strings.TrimSpace(rest)
			} else if rest == "" {
				s = remainder
			} else {
				s = remainder + "\n" + rest
			}
			break
		}
	}

	for len(s) >= 2 {
		q := s[0]
		if (q == '"' || q == '\'' || q == '`') && s[len(s)-1] == q {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}

	return strings.TrimSpace(s)
}

// Parse splits a message into its Conventional Commits parts.
func Parse(msg string) (Message, error) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return Message{}, cerr.New("commit message is empty")
	}

	header, body, _ := strings.Cut(msg, "\n")
	header = strings.TrimSpace(header)
	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return Message{}, cerr.Newf("header %q does not follow <type>(<scope>): <description>", header)
	}

	body = strings.TrimSpace(body)
	return Message{
		Header:      header,
		Type:        m[1],
		Scope:       m[2],
		Breaking:    m[3] == "!" || strings.Contains(body, "BREAKING CHANGE:"),
		Description: strings.TrimSpace(m[4]),
		Body:        body,
	}, nil
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Validate reports every Conventional Commits problem in msg, or nil.
func Validate(msg string) error {
	parsed, err := Parse(msg)
	if err != nil {
		return err
	}

	var result *multierror.Error
	if !isValidType(parsed.Type) {
		result = multierror.Append(result, fmt.Errorf("unknown type %q (valid: %s)", parsed.Type, strings.Join(ValidTypes, ", ")))
	}
	if parsed.Description == "" {
		result = multierror.Append(result, fmt.Errorf("description is empty"))
	}
	if strings.HasSuffix(parsed.Description, ".") {
		result = multierror.Append(result, fmt.Errorf("description ends with a period"))
	}
	if n := len([]rune(parsed.Header)); n > MaxHeaderLength {
		result = multierror.Append(result, fmt.Errorf("header is %d characters, limit is %d", n, MaxHeaderLength))
	}
	return result.ErrorOrNil()
}
