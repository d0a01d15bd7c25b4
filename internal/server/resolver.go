package server

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"dirserve/internal/tree"
)

// rangePattern accepts "bytes=begin-end" and "bytes=begin-" only.
var rangePattern = regexp.MustCompile(`bytes=(\d+)-(\d*)`)

// Request is the part of an HTTP request the resolver looks at.
type Request struct {
	Path  string // escaped URL path
	Range string // Range header, possibly empty
}

// Resolver maps request paths onto a directory tree.
type Resolver struct {
	indexFile    string
	notFoundFile string
	lister       *lister
}

func NewResolver(indexFile, notFoundFile string) (*Resolver, error) {
	l, err := newLister()
	if err != nil {
		return nil, err
	}
	return &Resolver{indexFile: indexFile, notFoundFile: notFoundFile, lister: l}, nil
}

// Resolve walks req.Path down from root. Misses fall back to the nearest
// custom not-found page among the directories traversed, then to a
// listing (for the index target) or a plain 404. The error is non-nil only
// when a listing cannot be read.
func (r *Resolver) Resolve(ctx context.Context, root tree.Dir, req Request) (*Response, error) {
	dirNames, target := splitRequestPath(req.Path, r.indexFile)

	ancestors := []tree.Dir{root}
	dir := root
	dirPath := "/"

	for _, name := range dirNames {
		sub, ok := dir.Dir(ctx, name)
		if !ok {
			return r.notFound(ctx, ancestors), nil
		}
		ancestors = append(ancestors, sub)
		dir = sub
		dirPath += name + "/"
	}

	if f, ok := dir.File(ctx, target); ok {
		return serveFile(f, req.Range), nil
	}
	if _, ok := dir.Dir(ctx, target); ok {
		return redirectResponse(dirPath + target + "/"), nil
	}

	if res := r.findNotFoundPage(ctx, ancestors); res != nil {
		return res, nil
	}
	if target != r.indexFile {
		return plainNotFoundResponse(), nil
	}

	body, err := r.lister.render(ctx, dir, dirPath)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dirPath, err)
	}
	return listingResponse(body), nil
}

func (r *Resolver) notFound(ctx context.Context, ancestors []tree.Dir) *Response {
	if res := r.findNotFoundPage(ctx, ancestors); res != nil {
		return res
	}
	return plainNotFoundResponse()
}

// findNotFoundPage searches ancestors deepest first for the custom
// not-found page. It returns nil when none has one.
func (r *Resolver) findNotFoundPage(ctx context.Context, ancestors []tree.Dir) *Response {
	for i := len(ancestors) - 1; i >= 0; i-- {
		if f, ok := ancestors[i].File(ctx, r.notFoundFile); ok {
			return customNotFoundResponse(f)
		}
	}
	return nil
}

// serveFile answers with the whole file, or with the requested slice when
// the Range header parses. Unparsable ranges are ignored.
func serveFile(f tree.File, rangeHeader string) *Response {
	size := f.Size()
	res := &Response{
		Kind:        ResponseFile,
		Status:      http.StatusOK,
		ContentType: f.Type(),
		File:        f,
		End:         size,
	}
	if res.ContentType == "" {
		res.ContentType = "text/plain"
	}

	begin, end, ok := parseRange(rangeHeader, size)
	if !ok {
		return res
	}

	res.Status = http.StatusPartialContent
	res.ContentRange = fmt.Sprintf("bytes %d-%d/%d", begin, end-1, size)
	res.Begin, res.End = tree.ClampRange(begin, end, size)
	return res
}

// parseRange extracts [begin, end) from a Range header. The header's last
// byte is inclusive; a missing or zero last byte means the end of the file.
func parseRange(header string, size int64) (int64, int64, bool) {
	if header == "" {
		return 0, 0, false
	}
	m := rangePattern.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, false
	}

	begin, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	last, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || last == 0 || last >= size {
		return begin, size, true
	}
	return begin, last + 1, true
}
