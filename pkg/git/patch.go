package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// The types below implement go-git's plumbing/format/diff interfaces so staged
// index entries can be rendered with its UnifiedEncoder.

type patch struct {
	filePatches []fdiff.FilePatch
}

func (p patch) FilePatches() []fdiff.FilePatch { return p.filePatches }
func (p patch) Message() string                { return "" }

type file struct {
	path string
	hash plumbing.Hash
	mode filemode.FileMode
}

func (f *file) Hash() plumbing.Hash     { return f.hash }
func (f *file) Mode() filemode.FileMode { return f.mode }
func (f *file) Path() string            { return f.path }

type chunk struct {
	content string
	op      fdiff.Operation
}

func (c chunk) Content() string        { return c.content }
func (c chunk) Type() fdiff.Operation { return c.op }

type filePatch struct {
	from, to *file
	binary   bool
	chunks   []fdiff.Chunk
}

func (p *filePatch) IsBinary() bool        { return p.binary }
func (p *filePatch) Chunks() []fdiff.Chunk { return p.chunks }

// Files returns untyped nils for a missing side, as the encoder expects.
func (p *filePatch) Files() (from, to fdiff.File) {
	if p.from != nil {
		from = p.from
	}
	if p.to != nil {
		to = p.to
	}
	return from, to
}

func toFile(e *entry) *file {
	if e == nil {
		return nil
	}
	return &file{path: e.path, hash: e.hash, mode: e.mode}
}

func buildFilePatch(d delta, read blobReader) (*filePatch, error) {
	fp := &filePatch{from: toFile(d.from), to: toFile(d.to)}
	if d.from != nil && d.to != nil && d.from.hash == d.to.hash {
		return fp, nil
	}

	var oldContent, newContent []byte
	var err error
	if d.from != nil {
		if oldContent, err = read(d.from.hash); err != nil {
			return nil, err
		}
	}
	if d.to != nil {
		if newContent, err = read(d.to.hash); err != nil {
			return nil, err
		}
	}

	if isBinary(oldContent) || isBinary(newContent) {
		fp.binary = true
		return fp, nil
	}

	fp.chunks = lineChunks(string(oldContent), string(newContent))
	return fp, nil
}

// lineChunks maps a line-mode diff onto encoder chunks.
func lineChunks(src, dst string) []fdiff.Chunk {
	var chunks []fdiff.Chunk
	for _, d := range diff.Do(src, dst) {
		if d.Text == "" {
			continue
		}
		var op fdiff.Operation
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = fdiff.Add
		case diffmatchpatch.DiffDelete:
			op = fdiff.Delete
		default:
			op = fdiff.Equal
		}
		chunks = append(chunks, chunk{content: d.Text, op: op})
	}
	return chunks
}

func encodeFilePatch(fp *filePatch) (string, error) {
	var sb strings.Builder
	enc := fdiff.NewUnifiedEncoder(&sb, fdiff.DefaultContextLines)
	if err := enc.Encode(patch{filePatches: []fdiff.FilePatch{fp}}); err != nil {
		return "", err
	}
	return sb.String(), nil
}
