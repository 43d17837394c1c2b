package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeKindCodesAndLabels(t *testing.T) {
	tests := []struct {
		kind  ChangeKind
		code  string
		label string
	}{
		{Added, "A", "added"},
		{Modified, "M", "modified"},
		{Deleted, "D", "deleted"},
		{Renamed, "R", "renamed"},
		{ChangeKind(42), "?", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.kind.Code())
			assert.Equal(t, tt.label, tt.kind.Label())
			assert.Equal(t, tt.label, tt.kind.String())
		})
	}
}
