package server

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirserve/internal/tree"
)

var rowName = regexp.MustCompile(`<td class="name"><a href="([^"]*)">`)

func renderListing(t *testing.T, dir tree.Dir, dirPath string) string {
	t.Helper()
	l, err := newLister()
	require.NoError(t, err)
	l.now = func() time.Time { return fixedNow }

	body, err := l.render(context.Background(), dir, dirPath)
	require.NoError(t, err)
	return string(body)
}

func rowHrefs(page string) []string {
	var hrefs []string
	for _, m := range rowName.FindAllStringSubmatch(page, -1) {
		hrefs = append(hrefs, m[1])
	}
	return hrefs
}

func TestListing_Order(t *testing.T) {
	t.Parallel()

	dir := tree.NewMemDir()
	dir.AddFile("b.txt", []byte("b"), "")
	dir.AddFile("A.txt", []byte("a"), "")
	dir.AddDir("zeta")
	dir.AddDir("alpha")
	dir.AddFile("0.txt", nil, "")
	dir.AddDir("Beta")

	page := renderListing(t, dir, "/x/")

	assert.Equal(t, []string{"../", "Beta/", "alpha/", "zeta/", "0.txt", "A.txt", "b.txt"}, rowHrefs(page),
		"directories must precede files, each group in lexicographic order")
}

func TestListing_RootHasNoParent(t *testing.T) {
	t.Parallel()

	dir := tree.NewMemDir()
	dir.AddFile("f", nil, "")

	page := renderListing(t, dir, "/")
	assert.Equal(t, []string{"f"}, rowHrefs(page))
	assert.Contains(t, page, "<title>Index of /</title>")
	assert.Contains(t, page, "<h1>Index of /</h1>")
}

func TestListing_Rows(t *testing.T) {
	t.Parallel()

	dir := tree.NewMemDir()
	dir.AddFile("big.iso", make([]byte, 3*1024+512), "")
	dir.AddDir("sub")

	page := renderListing(t, dir, "/a/")

	assert.Contains(t, page, `<td class="icon">📂</td>
      <td class="size"></td>
      <td class="name"><a href="sub/">sub/</a></td>`)
	assert.Contains(t, page, `<td class="icon">📄</td>
      <td class="size">3.5k</td>
      <td class="name"><a href="big.iso">big.iso</a></td>`)
	assert.Contains(t, page, "Powered by dirserve ("+fixedNow.Format(listingTimeLayout)+")")
}

func TestListing_Escaping(t *testing.T) {
	t.Parallel()

	name := `a&b <c> "d".txt`
	dir := tree.NewMemDir()
	dir.AddFile(name, nil, "")

	page := renderListing(t, dir, "/we & <they>/")

	assert.NotContains(t, page, name)
	assert.Contains(t, page, `href="a&#38;b&#32;&#60;c&#62;&#32;&#34;d&#34;.txt"`)
	assert.Contains(t, page, `>a&#38;b&nbsp;&#60;c&#62;&nbsp;&#34;d&#34;.txt</a>`)
	assert.Contains(t, page, "<title>Index of /we&nbsp;&#38;&nbsp;&#60;they&#62;/</title>")
}
