package server

import (
	"net/url"
	"regexp"
	"strings"
)

var slashRun = regexp.MustCompile(`/+`)

// splitRequestPath decodes an escaped URL path into the directories to
// descend through and the target name. An empty target becomes index.
// A path that fails to decode is used as is.
func splitRequestPath(escaped, index string) ([]string, string) {
	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		decoded = escaped
	}

	segments := slashRun.Split(strings.TrimLeft(decoded, "/"), -1)
	last := len(segments) - 1

	target := segments[last]
	if target == "" {
		target = index
	}
	return segments[:last], target
}

// escapeLogicalPath percent-escapes each segment of a logical path for use
// in a Location header.
func escapeLogicalPath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
