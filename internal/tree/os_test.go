package tree

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOSTree(t *testing.T) (string, *OSRoot) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "api"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>home</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "data.bin"), []byte("0123456789"), 0o644))

	root, err := OpenOS(dir)
	require.NoError(t, err)
	t.Cleanup(func() { root.Close() })

	return dir, root
}

func TestOSRoot_Lookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, root := createOSTree(t)

	docs, ok := root.Dir(ctx, "docs")
	require.True(t, ok)

	_, ok = docs.Dir(ctx, "api")
	assert.True(t, ok, "nested directory must be found")

	f, ok := docs.File(ctx, "data.bin")
	require.True(t, ok)
	assert.Equal(t, "data.bin", f.Name())
	assert.EqualValues(t, 10, f.Size())

	_, ok = root.File(ctx, "docs")
	assert.False(t, ok, "directory must not resolve as file")
	_, ok = root.Dir(ctx, "index.html")
	assert.False(t, ok, "file must not resolve as directory")

	index, ok := root.File(ctx, "index.html")
	require.True(t, ok)
	assert.Contains(t, index.Type(), "text/html")
}

func TestOSRoot_InvalidNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, root := createOSTree(t)
	docs, ok := root.Dir(ctx, "docs")
	require.True(t, ok)

	for _, name := range []string{"", ".", "..", "api/..", "../index.html", `a\b`} {
		_, ok := docs.Dir(ctx, name)
		assert.False(t, ok, "dir lookup of %q must miss", name)
		_, ok = docs.File(ctx, name)
		assert.False(t, ok, "file lookup of %q must miss", name)
	}
}

func TestOSRoot_SymlinkEscape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir, root := createOSTree(t)

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0o644))
	require.NoError(t, os.Symlink(secret, filepath.Join(dir, "escape.txt")))
	require.NoError(t, os.Symlink("docs", filepath.Join(dir, "inside")))

	_, ok := root.File(ctx, "escape.txt")
	assert.False(t, ok, "symlink leaving the root must miss")

	_, ok = root.Dir(ctx, "inside")
	assert.True(t, ok, "symlink within the root must resolve")
}

func TestOSRoot_Entries(t *testing.T) {
	t.Parallel()
	_, root := createOSTree(t)

	entries, err := root.Entries(context.Background())
	require.NoError(t, err)

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	assert.Equal(t, []Entry{
		{Name: "docs", Kind: KindDir},
		{Name: "index.html", Kind: KindFile},
	}, entries)
}

func TestOSFile_Open(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, root := createOSTree(t)
	docs, _ := root.Dir(ctx, "docs")
	f, ok := docs.File(ctx, "data.bin")
	require.True(t, ok)

	tests := []struct {
		name       string
		begin, end int64
		want       string
	}{
		{"whole file", 0, 10, "0123456789"},
		{"middle", 2, 5, "234"},
		{"end past size", 8, 100, "89"},
		{"begin past size", 20, 30, ""},
		{"end before begin", 5, 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := f.Open(ctx, tt.begin, tt.end)
			require.NoError(t, err)
			defer rc.Close()

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestOSRoot_QueryPermission(t *testing.T) {
	t.Parallel()
	dir, root := createOSTree(t)

	assert.Equal(t, PermissionGranted, root.QueryPermission(context.Background()))
	assert.Equal(t, dir, root.Path())
}

func TestOpenOS_Missing(t *testing.T) {
	t.Parallel()

	_, err := OpenOS(filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
