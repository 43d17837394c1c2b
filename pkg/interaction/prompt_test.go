package interaction

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeYesNoInput(t *testing.T) {
	tests := []struct {
		in     string
		answer bool
		ok     bool
	}{
		{"y", true, true},
		{"  YES ", true, true},
		{"n", false, true},
		{"No", false, true},
		{"", false, false},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		answer, ok := NormalizeYesNoInput(tt.in)
		assert.Equal(t, tt.answer, answer, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"no", "no\n", true, false},
		{"empty uses default no", "\n", false, false},
		{"empty uses default yes", "\n", true, true},
		{"unknown uses default", "sure\n", false, false},
		{"eof uses default", "", true, true},
		{"no trailing newline", "yes", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Confirm(ctx, strings.NewReader(tt.input), "Commit?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestConfirmReadError(t *testing.T) {
	_, err := Confirm(context.Background(), failingReader{}, "Commit?", true)
	assert.EqualError(t, err, "tty gone")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}

func FuzzNormalizeYesNoInput(f *testing.F) {
	f.Add("yes")
	f.Add("  yEs ")
	f.Add("not-a-valid-answer")

	f.Fuzz(func(t *testing.T, input string) {
		answer, ok := NormalizeYesNoInput(input)
		if !ok && answer {
			t.Fatalf("unrecognised input %q produced a yes", input)
		}
	})
}
