package server

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"dirserve/internal/tree"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.Local)

// createCascadeTree builds root/{404.html, a/{404.html, b/page.txt}, c/}.
func createCascadeTree() *tree.MemDir {
	root := tree.NewMemDir()
	root.AddFile("404.html", []byte("root not found"), "")
	a := root.AddDir("a")
	a.AddFile("404.html", []byte("a not found"), "")
	a.AddDir("b").AddFile("page.txt", []byte("page"), "")
	root.AddDir("c")
	return root
}

// createPlainTree builds a tree without any custom not-found page.
func createPlainTree() *tree.MemDir {
	root := tree.NewMemDir()
	root.AddFile("data.bin", bytes.Repeat([]byte("0123456789"), 10), "application/octet-stream")
	root.AddFile("notes", []byte("no extension"), "")
	docs := root.AddDir("docs")
	docs.AddFile("readme.md", []byte("# readme"), "")
	docs.AddDir("sub")
	site := root.AddDir("my site")
	site.AddFile("index.html", []byte("<h1>site</h1>"), "")
	return root
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver("index.html", "404.html")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	r.lister.now = func() time.Time { return fixedNow }
	return r
}
