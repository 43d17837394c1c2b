package git

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/binary"
	"go.uber.org/zap"
)

// entry is one blob reference from either the index or a tree.
type entry struct {
	path string
	hash plumbing.Hash
	mode filemode.FileMode
}

// delta pairs the HEAD side and the index side of one change. Either may be nil.
type delta struct {
	from *entry
	to   *entry
}

func (d delta) kind() ChangeKind {
	switch {
	case d.from == nil:
		return Added
	case d.to == nil:
		return Deleted
	case d.from.path != d.to.path:
		return Renamed
	default:
		return Modified
	}
}

func (d delta) path() string {
	if d.to != nil {
		return d.to.path
	}
	return d.from.path
}

// blobReader returns the content of a blob.
type blobReader func(plumbing.Hash) ([]byte, error)

var emptyBlobHash = plumbing.ComputeHash(plumbing.BlobObject, []byte{})

// HasStagedChanges reports whether the index differs from HEAD. Without commits,
// any index entry counts.
func (r *Repository) HasStagedChanges() (bool, error) {
	staged, err := r.indexEntries()
	if err != nil {
		return false, err
	}
	if r.head == nil {
		return len(staged) > 0, nil
	}

	head, err := r.headEntries()
	if err != nil {
		return false, err
	}
	return len(compareEntries(head, staged)) > 0, nil
}

// HasUnstagedChanges reports whether a tracked file in the working tree differs
// from the index. Untracked files do not count.
func (r *Repository) HasUnstagedChanges() (bool, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return false, commitia_err.NewGitError("failed to read working tree status", err)
	}
	for path, fs := range status {
		if fs.Worktree != gogit.Unmodified && fs.Worktree != gogit.Untracked {
			r.log.Debug("Unstaged change found", zap.String("path", path))
			return true, nil
		}
	}
	return false, nil
}

// StagedChanges returns one record per staged file, ordered by path.
func (r *Repository) StagedChanges() ([]ChangeRecord, error) {
	staged, err := r.indexEntries()
	if err != nil {
		return nil, err
	}

	var records []ChangeRecord
	if r.head == nil {
		records, err = initialChanges(staged, r.readBlob)
	} else {
		var head []entry
		head, err = r.headEntries()
		if err != nil {
			return nil, err
		}
		records, err = diffChanges(head, staged, r.readBlob)
	}
	if err != nil {
		return nil, commitia_err.NewGitError("failed to extract staged changes", err)
	}

	r.log.Debug("Extracted staged changes",
		zap.Int("files", len(records)),
		zap.Bool("initial_commit", r.head == nil))

	return records, nil
}

func (r *Repository) indexEntries() ([]entry, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, commitia_err.NewGitError("failed to read the git index", err)
	}
	return stagedEntries(idx), nil
}

// Fully merged entries carry stage 0. Stages 1-3 are the sides of a conflict.
const stageMerged index.Stage = 0

// stagedEntries returns merged, non-submodule index entries sorted by path.
func stagedEntries(idx *index.Index) []entry {
	entries := make([]entry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		if e.Stage != stageMerged || e.Mode == filemode.Submodule {
			continue
		}
		entries = append(entries, entry{path: e.Name, hash: e.Hash, mode: e.Mode})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })
	return entries
}

func (r *Repository) headEntries() ([]entry, error) {
	tree, err := r.head.Tree()
	if err != nil {
		return nil, commitia_err.NewGitError("failed to read HEAD tree", err)
	}

	var entries []entry
	err = tree.Files().ForEach(func(f *object.File) error {
		entries = append(entries, entry{path: f.Name, hash: f.Hash, mode: f.Mode})
		return nil
	})
	if err != nil {
		return nil, commitia_err.NewGitError("failed to walk HEAD tree", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })
	return entries, nil
}

func (r *Repository) readBlob(h plumbing.Hash) ([]byte, error) {
	blob, err := r.repo.BlobObject(h)
	if err != nil {
		return nil, fmt.Errorf("blob %s: %w", h, err)
	}
	rd, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("blob %s: %w", h, err)
	}
	defer func() { _ = rd.Close() }()
	return io.ReadAll(rd)
}

// compareEntries walks two path-sorted entry lists and returns the differences,
// with exact renames folded, ordered by path.
func compareEntries(head, staged []entry) []delta {
	var deltas []delta
	i, j := 0, 0
	for i < len(head) || j < len(staged) {
		switch {
		case j >= len(staged) || (i < len(head) && head[i].path < staged[j].path):
			deltas = append(deltas, delta{from: &head[i]})
			i++
		case i >= len(head) || staged[j].path < head[i].path:
			deltas = append(deltas, delta{to: &staged[j]})
			j++
		default:
			if head[i].hash != staged[j].hash || head[i].mode != staged[j].mode {
				deltas = append(deltas, delta{from: &head[i], to: &staged[j]})
			}
			i++
			j++
		}
	}

	deltas = pairRenames(deltas)
	sort.SliceStable(deltas, func(a, b int) bool { return deltas[a].path() < deltas[b].path() })
	return deltas
}

// pairRenames folds a deleted and an added path with the same non-empty blob into
// one rename. Candidates are matched in path order.
func pairRenames(deltas []delta) []delta {
	added := make(map[plumbing.Hash][]int)
	for i, d := range deltas {
		if d.from == nil && d.to.hash != emptyBlobHash {
			added[d.to.hash] = append(added[d.to.hash], i)
		}
	}

	consumed := make(map[int]bool)
	for i := range deltas {
		d := &deltas[i]
		if d.to != nil || d.from.hash == emptyBlobHash {
			continue
		}
		candidates := added[d.from.hash]
		if len(candidates) == 0 {
			continue
		}
		d.to = deltas[candidates[0]].to
		consumed[candidates[0]] = true
		added[d.from.hash] = candidates[1:]
	}

	out := deltas[:0:0]
	for i, d := range deltas {
		if !consumed[i] {
			out = append(out, d)
		}
	}
	return out
}

// initialChanges builds records for a repository without commits: every index
// entry is an addition.
func initialChanges(staged []entry, read blobReader) ([]ChangeRecord, error) {
	records := make([]ChangeRecord, 0, len(staged))
	for _, e := range staged {
		content, err := read(e.hash)
		if err != nil {
			return nil, err
		}

		var diff string
		if isBinary(content) {
			diff = fmt.Sprintf("Binary files /dev/null and b/%s differ\n", e.path)
		} else {
			diff = additionDiff(e.path, string(content))
		}

		records = append(records, newRecord(e.path, "", Added, diff))
	}
	return records, nil
}

// additionDiff renders content as a new-file unified diff against /dev/null.
func additionDiff(path, content string) string {
	var sb strings.Builder
	sb.WriteString("--- /dev/null\n")
	fmt.Fprintf(&sb, "+++ b/%s\n", path)

	n := countContentLines(content)
	if n == 0 {
		return sb.String()
	}

	fmt.Fprintf(&sb, "@@ -0,0 +1,%d @@\n", n)
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString("+")
		sb.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			sb.WriteString("\n\\ No newline at end of file\n")
		}
	}
	return sb.String()
}

// countContentLines counts newline characters, plus one for a final unterminated line.
func countContentLines(content string) int {
	n := strings.Count(content, "\n")
	if content != "" && !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// diffChanges builds records for the differences between the HEAD tree and the index.
func diffChanges(head, staged []entry, read blobReader) ([]ChangeRecord, error) {
	deltas := compareEntries(head, staged)
	records := make([]ChangeRecord, 0, len(deltas))
	for _, d := range deltas {
		fp, err := buildFilePatch(d, read)
		if err != nil {
			return nil, err
		}
		diff, err := encodeFilePatch(fp)
		if err != nil {
			return nil, err
		}

		oldPath := ""
		if d.kind() == Renamed {
			oldPath = d.from.path
		}
		records = append(records, newRecord(d.path(), oldPath, d.kind(), diff))
	}
	return records, nil
}

func newRecord(path, oldPath string, kind ChangeKind, diff string) ChangeRecord {
	added, removed := CountDiffLines(diff)
	return ChangeRecord{
		FilePath:     path,
		OldPath:      oldPath,
		Kind:         kind,
		LinesAdded:   added,
		LinesRemoved: removed,
		Diff:         diff,
	}
}

// CountDiffLines counts lines starting with '+' and '-', skipping the
// '+++' and '---' file header lines.
func CountDiffLines(diff string) (added, removed int) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}
	return added, removed
}

func isBinary(content []byte) bool {
	ok, err := binary.IsBinary(bytes.NewReader(content))
	return err == nil && ok
}
