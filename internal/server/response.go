package server

import (
	"net/http"

	"dirserve/internal/tree"
)

type ResponseKind int

const (
	// ResponseFile streams File[Begin:End).
	ResponseFile ResponseKind = iota
	// ResponseRedirect points the client at Location.
	ResponseRedirect
	// ResponseListing carries a generated index page in Body.
	ResponseListing
	// ResponseNotFound carries either a custom page in File or a plain Body.
	ResponseNotFound
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseFile:
		return "file"
	case ResponseRedirect:
		return "redirect"
	case ResponseListing:
		return "listing"
	default:
		return "not_found"
	}
}

// Response describes how a request resolved. Exactly one of File, Body or
// Location is meaningful, depending on Kind.
type Response struct {
	Kind         ResponseKind
	Status       int
	ContentType  string
	ContentRange string
	Location     string // logical path, unescaped
	Body         []byte
	File         tree.File
	Begin, End   int64
}

// ContentLength is the number of body bytes the response carries.
func (r *Response) ContentLength() int64 {
	if r.File != nil {
		return r.End - r.Begin
	}
	return int64(len(r.Body))
}

func redirectResponse(location string) *Response {
	return &Response{
		Kind:     ResponseRedirect,
		Status:   http.StatusFound,
		Location: location,
	}
}

func listingResponse(body []byte) *Response {
	return &Response{
		Kind:        ResponseListing,
		Status:      http.StatusOK,
		ContentType: "text/html",
		Body:        body,
	}
}

func customNotFoundResponse(f tree.File) *Response {
	return &Response{
		Kind:        ResponseNotFound,
		Status:      http.StatusNotFound,
		ContentType: f.Type(),
		File:        f,
		End:         f.Size(),
	}
}

func plainNotFoundResponse() *Response {
	return &Response{
		Kind:        ResponseNotFound,
		Status:      http.StatusNotFound,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte("404 Not Found"),
	}
}
