package tree

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
)

// OSRoot serves a directory on the local filesystem. Every access goes
// through an [os.Root], so neither names nor symlinks can escape it.
type OSRoot struct {
	osDir
	path string
}

// OpenOS opens dir as a tree root. The caller must Close it.
func OpenOS(dir string) (*OSRoot, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open root %s: %w", dir, err)
	}
	return &OSRoot{osDir: osDir{root: root, rel: "."}, path: dir}, nil
}

// Path is the directory the root was opened from.
func (r *OSRoot) Path() string {
	return r.path
}

func (r *OSRoot) Close() error {
	return r.root.Close()
}

// QueryPermission is granted while the root directory can still be listed.
func (r *OSRoot) QueryPermission(ctx context.Context) Permission {
	f, err := r.root.Open(".")
	if err != nil {
		return PermissionDenied
	}
	defer f.Close()

	if _, err := f.ReadDir(1); err != nil && err != io.EOF {
		return PermissionDenied
	}
	return PermissionGranted
}

type osDir struct {
	root *os.Root
	rel  string
}

func (d osDir) Entries(ctx context.Context) ([]Entry, error) {
	f, err := d.root.Open(d.rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirEntries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		mode := de.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := d.root.Stat(path.Join(d.rel, de.Name()))
			if err != nil {
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			entries = append(entries, Entry{Name: de.Name(), Kind: KindDir})
		case mode.IsRegular():
			entries = append(entries, Entry{Name: de.Name(), Kind: KindFile})
		}
	}

	return entries, nil
}

func (d osDir) stat(name string) (fs.FileInfo, string, bool) {
	if !ValidName(name) {
		return nil, "", false
	}
	rel := path.Join(d.rel, name)
	info, err := d.root.Stat(rel)
	if err != nil {
		return nil, "", false
	}
	return info, rel, true
}

func (d osDir) Dir(ctx context.Context, name string) (Dir, bool) {
	info, rel, ok := d.stat(name)
	if !ok || !info.IsDir() {
		return nil, false
	}
	return osDir{root: d.root, rel: rel}, true
}

func (d osDir) File(ctx context.Context, name string) (File, bool) {
	info, rel, ok := d.stat(name)
	if !ok || !info.Mode().IsRegular() {
		return nil, false
	}
	return &osFile{root: d.root, rel: rel, name: name, size: info.Size()}, true
}

type osFile struct {
	root *os.Root
	rel  string
	name string
	size int64
}

func (f *osFile) Name() string { return f.name }
func (f *osFile) Size() int64  { return f.size }
func (f *osFile) Type() string { return TypeByName(f.name) }

type sectionReadCloser struct {
	*io.SectionReader
	io.Closer
}

func (f *osFile) Open(ctx context.Context, begin, end int64) (io.ReadCloser, error) {
	file, err := f.root.Open(f.rel)
	if err != nil {
		return nil, err
	}
	begin, end = ClampRange(begin, end, f.size)
	return sectionReadCloser{io.NewSectionReader(file, begin, end-begin), file}, nil
}
