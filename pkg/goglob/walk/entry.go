// Package walk reads directory entries for the glob driver. It has two
// backends: a Linux one that batches raw getdents64 syscalls to read a
// whole directory with a handful of read(2)-class calls instead of one
// lstat per entry, and a portable os.ReadDir backend used everywhere else.
// Both speak the same small Walker interface so driver.go never branches on
// platform.
package walk

import "os"

// EntryType classifies a directory entry. TypeUnknown means the backend
// could not determine the type cheaply (e.g. Linux DT_UNKNOWN, which some
// filesystems always report) — callers needing a definite answer should
// call ResolveType.
type EntryType int

const (
	TypeUnknown EntryType = iota
	TypeFile
	TypeDir
	TypeSymlink
)

// Entry is one name returned from a directory listing.
type Entry struct {
	Name string
	Type EntryType
}

func (e Entry) IsDir() bool     { return e.Type == TypeDir }
func (e Entry) IsSymlink() bool { return e.Type == TypeSymlink }

// Walker lists the entries of one directory.
type Walker interface {
	ReadDir(path string) ([]Entry, error)
}

// New returns the fastest Walker available for the current platform.
func New() Walker { return newOSWalker() }

// ResolveType stats dirPath/e.Name when the backend couldn't determine the
// type from the directory listing itself.
func ResolveType(dirPath string, e Entry) (EntryType, error) {
	if e.Type != TypeUnknown {
		return e.Type, nil
	}
	fi, err := os.Lstat(joinPath(dirPath, e.Name))
	if err != nil {
		return TypeUnknown, err
	}
	switch {
	case fi.Mode()&os.ModeSymlink != 0:
		return TypeSymlink, nil
	case fi.IsDir():
		return TypeDir, nil
	default:
		return TypeFile, nil
	}
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	if dir[len(dir)-1] == '/' {
		return dir + name
	}
	return dir + "/" + name
}
