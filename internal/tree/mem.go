package tree

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// MemDir is an in-memory directory. Children may be added concurrently
// with lookups.
type MemDir struct {
	dirs  *xsync.Map[string, *MemDir]
	files *xsync.Map[string, *MemFile]
}

func NewMemDir() *MemDir {
	return &MemDir{
		dirs:  xsync.NewMap[string, *MemDir](),
		files: xsync.NewMap[string, *MemFile](),
	}
}

// AddDir returns the child directory name, creating it if needed.
func (d *MemDir) AddDir(name string) *MemDir {
	sub, _ := d.dirs.LoadOrStore(name, NewMemDir())
	return sub
}

// AddFile stores a file, replacing any previous file of the same name.
// An empty mime is derived from the name.
func (d *MemDir) AddFile(name string, data []byte, mime string) *MemFile {
	if mime == "" {
		mime = TypeByName(name)
	}
	f := &MemFile{name: name, data: data, mime: mime}
	d.files.Store(name, f)
	return f
}

func (d *MemDir) Entries(ctx context.Context) ([]Entry, error) {
	entries := make([]Entry, 0, d.dirs.Size()+d.files.Size())
	d.dirs.Range(func(name string, _ *MemDir) bool {
		entries = append(entries, Entry{Name: name, Kind: KindDir})
		return true
	})
	d.files.Range(func(name string, _ *MemFile) bool {
		entries = append(entries, Entry{Name: name, Kind: KindFile})
		return true
	})
	return entries, nil
}

func (d *MemDir) Dir(ctx context.Context, name string) (Dir, bool) {
	sub, ok := d.dirs.Load(name)
	if !ok {
		return nil, false
	}
	return sub, true
}

func (d *MemDir) File(ctx context.Context, name string) (File, bool) {
	f, ok := d.files.Load(name)
	if !ok {
		return nil, false
	}
	return f, true
}

type MemFile struct {
	name string
	data []byte
	mime string
}

func (f *MemFile) Name() string { return f.name }
func (f *MemFile) Size() int64  { return int64(len(f.data)) }
func (f *MemFile) Type() string { return f.mime }

func (f *MemFile) Open(ctx context.Context, begin, end int64) (io.ReadCloser, error) {
	begin, end = ClampRange(begin, end, f.Size())
	return io.NopCloser(bytes.NewReader(f.data[begin:end])), nil
}

// MemRoot is a [Root] over a [MemDir] whose permission can be changed at
// any time.
type MemRoot struct {
	*MemDir
	perm atomic.Int32
}

// NewMemRoot wraps dir with a granted permission.
func NewMemRoot(dir *MemDir) *MemRoot {
	r := &MemRoot{MemDir: dir}
	r.SetPermission(PermissionGranted)
	return r
}

func (r *MemRoot) SetPermission(p Permission) {
	r.perm.Store(int32(p))
}

func (r *MemRoot) QueryPermission(ctx context.Context) Permission {
	return Permission(r.perm.Load())
}
