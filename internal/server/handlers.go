package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dirserve/internal/tree"
)

// fetchModeHeader is sent by browsers; "navigate" marks a top-level load.
const fetchModeHeader = "Sec-Fetch-Mode"

func (s *Server) handleRequest(c *gin.Context) {
	root, generation, ok := s.state.current()
	if !ok {
		s.stats.refused.Inc()
		s.respondError(c, errServerStopped)
		return
	}

	if s.isStopRequest(c.Request) {
		s.disable(generation, "stop requested")
		c.Redirect(http.StatusFound, "/")
		return
	}

	ctx := c.Request.Context()
	if perm := root.QueryPermission(ctx); perm != tree.PermissionGranted {
		s.logger.Warn().Stringer("permission", perm).Msg("Read permission lost")
		s.disable(generation, "permission "+perm.String())
		c.Redirect(http.StatusFound, "/")
		return
	}

	res, err := s.resolver.Resolve(ctx, root, Request{
		Path:  c.Request.URL.EscapedPath(),
		Range: c.GetHeader("Range"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.stats.record(res)
	s.writeResponse(c, res)
}

func (s *Server) handleNoMethod(c *gin.Context) {
	s.respondError(c, errMethodNotAllowed)
}

// isStopRequest matches a top-level GET of "?<stopQuery>". Clients that send
// no fetch mode at all are treated as top-level loads.
func (s *Server) isStopRequest(r *http.Request) bool {
	if r.Method != http.MethodGet || r.URL.RawQuery != s.stopQuery {
		return false
	}
	mode := r.Header.Get(fetchModeHeader)
	return mode == "" || mode == "navigate"
}

func (s *Server) writeResponse(c *gin.Context, res *Response) {
	switch {
	case res.Kind == ResponseRedirect:
		c.Redirect(res.Status, escapeLogicalPath(res.Location))
	case res.File != nil:
		body, err := res.File.Open(c.Request.Context(), res.Begin, res.End)
		if err != nil {
			s.respondError(c, err)
			return
		}
		defer body.Close()

		var extra map[string]string
		if res.ContentRange != "" {
			extra = map[string]string{"Content-Range": res.ContentRange}
		}
		c.DataFromReader(res.Status, res.ContentLength(), res.ContentType, body, extra)
	default:
		c.Data(res.Status, res.ContentType, res.Body)
	}
}

func (s *Server) respondError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var httpErr *httpError
	if errors.As(err, &httpErr) {
		if httpErr.Status >= http.StatusInternalServerError && httpErr != errServerStopped {
			s.logger.Error().Err(err).Msg("server error")
		}

		c.String(httpErr.Status, httpErr.Message)
		return
	}

	s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
	c.String(http.StatusInternalServerError, "internal server error")
}
