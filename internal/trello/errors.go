package trello

import "errors"

var (
	// ErrUnauthorized indicates a missing token or a token Trello rejected.
	ErrUnauthorized = errors.New("trello authorization failed")

	// ErrNotFound indicates the requested board, list, card or member does not exist.
	ErrNotFound = errors.New("trello resource not found")

	// ErrUnavailable indicates the Trello API could not be reached.
	ErrUnavailable = errors.New("trello api unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("trello request timed out")

	// ErrAPI indicates Trello answered with an unexpected status.
	ErrAPI = errors.New("trello api error")

	// ErrInvalidResponse indicates a response body that does not decode into
	// the expected record shape.
	ErrInvalidResponse = errors.New("invalid trello response")
)
