package server

import (
	"github.com/puzpuzpuz/xsync/v4"
)

// Stats is a snapshot of request outcomes since the server was created.
type Stats struct {
	Files          int64 `json:"files"`
	Partial        int64 `json:"partial"`
	Listings       int64 `json:"listings"`
	Redirects      int64 `json:"redirects"`
	CustomNotFound int64 `json:"custom_not_found"`
	NotFound       int64 `json:"not_found"`
	Refused        int64 `json:"refused"`
	Stops          int64 `json:"stops"`
}

type stats struct {
	files          *xsync.Counter
	partial        *xsync.Counter
	listings       *xsync.Counter
	redirects      *xsync.Counter
	customNotFound *xsync.Counter
	notFound       *xsync.Counter
	refused        *xsync.Counter
	stops          *xsync.Counter
}

func newStats() *stats {
	return &stats{
		files:          xsync.NewCounter(),
		partial:        xsync.NewCounter(),
		listings:       xsync.NewCounter(),
		redirects:      xsync.NewCounter(),
		customNotFound: xsync.NewCounter(),
		notFound:       xsync.NewCounter(),
		refused:        xsync.NewCounter(),
		stops:          xsync.NewCounter(),
	}
}

func (s *stats) record(res *Response) {
	switch res.Kind {
	case ResponseFile:
		if res.ContentRange != "" {
			s.partial.Inc()
		} else {
			s.files.Inc()
		}
	case ResponseRedirect:
		s.redirects.Inc()
	case ResponseListing:
		s.listings.Inc()
	case ResponseNotFound:
		if res.File != nil {
			s.customNotFound.Inc()
		} else {
			s.notFound.Inc()
		}
	}
}

func (s *stats) snapshot() Stats {
	return Stats{
		Files:          s.files.Value(),
		Partial:        s.partial.Value(),
		Listings:       s.listings.Value(),
		Redirects:      s.redirects.Value(),
		CustomNotFound: s.customNotFound.Value(),
		NotFound:       s.notFound.Value(),
		Refused:        s.refused.Value(),
		Stops:          s.stops.Value(),
	}
}
