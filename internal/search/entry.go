package search

import (
	"os"
	"strings"
)

// EntryKind classifies a filesystem node.
type EntryKind int

const (
	KindOther EntryKind = iota // Symlinks, devices, sockets, pipes
	KindFile                   // Regular file
	KindDir                    // Directory
)

// String returns a short name for the kind.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "other"
	}
}

// kindOf maps a file mode to an EntryKind without following symlinks.
func kindOf(mode os.FileMode) EntryKind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	default:
		return KindOther
	}
}

// Entry is one node visited during a walk.
type Entry struct {
	Path  string    // Path as reached from the root
	Name  string    // Base name
	Kind  EntryKind // File, directory or other
	Depth int       // Levels below the root; the root itself is 0
}

// Ext returns the text after the last dot of the base name. A name without a
// dot, or whose only dot is the leading one, has no extension.
func (e Entry) Ext() (string, bool) {
	i := strings.LastIndexByte(e.Name, '.')
	if i <= 0 {
		return "", false
	}
	return e.Name[i+1:], true
}
