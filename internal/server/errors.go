package server

import "net/http"

type httpError struct {
	Status  int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

var errServerStopped = &httpError{
	Status:  http.StatusServiceUnavailable,
	Message: "server stopped",
}

var errMethodNotAllowed = &httpError{
	Status:  http.StatusMethodNotAllowed,
	Message: "method not allowed",
}
