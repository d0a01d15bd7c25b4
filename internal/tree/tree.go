// Package tree models the read-only directory tree served by the resolver.
//
// Lookups report misses through a boolean rather than an error: a missing
// child is an ordinary outcome of path resolution.
package tree

import (
	"context"
	"io"
	"mime"
	"path"
	"strings"
)

type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// Entry is an immediate child of a [Dir].
type Entry struct {
	Name string
	Kind Kind
}

// Dir is a handle to a container in the tree.
type Dir interface {
	// Entries lists the immediate children in no particular order.
	Entries(ctx context.Context) ([]Entry, error)
	// Dir looks up a child directory.
	Dir(ctx context.Context, name string) (Dir, bool)
	// File looks up a child file.
	File(ctx context.Context, name string) (File, bool)
}

// File is a handle to a regular file in the tree.
type File interface {
	Name() string
	Size() int64
	// Type is the MIME type, possibly empty.
	Type() string
	// Open streams the bytes in [begin, end), clamped to the file size.
	Open(ctx context.Context, begin, end int64) (io.ReadCloser, error)
}

type Permission int

const (
	PermissionPrompt Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "prompt"
	}
}

// Root is the top of a served tree together with its read permission.
type Root interface {
	Dir
	QueryPermission(ctx context.Context) Permission
}

// ValidName reports whether name can identify a single child.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// TypeByName returns the MIME type derived from the extension of name, or "".
func TypeByName(name string) string {
	return mime.TypeByExtension(path.Ext(name))
}

// ClampRange bounds [begin, end) to a file of the given size.
func ClampRange(begin, end, size int64) (int64, int64) {
	begin = min(max(begin, 0), size)
	end = min(max(end, begin), size)
	return begin, end
}
