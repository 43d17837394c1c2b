// pkg/xdg/types.go

package xdg

const (
	// Permission modes (in octal)
	DirPermOwner           = 0700
	FilePermOwnerReadWrite = 0600
)
