package git

// ChangeKind classifies how a staged file differs from HEAD.
type ChangeKind int

const (
	Added ChangeKind = iota
	Modified
	Deleted
	Renamed
)

// Kinds lists every ChangeKind in display order.
var Kinds = []ChangeKind{Added, Modified, Deleted, Renamed}

var (
	kindCodes  = [...]string{"A", "M", "D", "R"}
	kindLabels = [...]string{"added", "modified", "deleted", "renamed"}
)

func (k ChangeKind) valid() bool {
	return k >= Added && k <= Renamed
}

// Code returns the one-letter status code git uses for this kind.
func (k ChangeKind) Code() string {
	if !k.valid() {
		return "?"
	}
	return kindCodes[k]
}

// Label returns the lower-case display name.
func (k ChangeKind) Label() string {
	if !k.valid() {
		return "unknown"
	}
	return kindLabels[k]
}

func (k ChangeKind) String() string {
	return k.Label()
}

// ChangeRecord describes one staged file.
// LinesAdded and LinesRemoved are always the result of CountDiffLines(Diff).
type ChangeRecord struct {
	FilePath     string
	OldPath      string // set for renames only
	Kind         ChangeKind
	LinesAdded   int
	LinesRemoved int
	Diff         string
}
