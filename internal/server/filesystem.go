package server

import (
	"context"
	"sort"
	"strings"

	"dirserve/internal/tree"
)

// dirSortPrefix sorts before any printable character, putting directories
// ahead of files.
const dirSortPrefix = "\x00"

type fileEntry struct {
	Name  string
	Size  int64
	IsDir bool
}

func (e fileEntry) sortKey() string {
	if e.IsDir {
		return dirSortPrefix + e.Name
	}
	return e.Name
}

// listEntries returns the children of dir ordered directories first, then by
// name. A ".." entry leads the list unless dirPath is the root.
func listEntries(ctx context.Context, dir tree.Dir, dirPath string) ([]fileEntry, error) {
	children, err := dir.Entries(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]fileEntry, 0, len(children)+1)
	if dirPath != "/" {
		entries = append(entries, fileEntry{Name: "..", IsDir: true})
	}

	for _, child := range children {
		if child.Kind == tree.KindDir {
			entries = append(entries, fileEntry{Name: child.Name, IsDir: true})
			continue
		}

		f, ok := dir.File(ctx, child.Name)
		if !ok {
			continue
		}
		entries = append(entries, fileEntry{Name: child.Name, Size: f.Size()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.Compare(entries[i].sortKey(), entries[j].sortKey()) < 0
	})

	return entries, nil
}
