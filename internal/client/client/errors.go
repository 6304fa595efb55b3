package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError is a non-2xx answer. Detail is the "detail" field of the body
// when the server sent one.
type APIError struct {
	Status int
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.Status)
}
