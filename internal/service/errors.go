package service

import "errors"

var (
	// ErrEmptyToken indicates an auth attempt without a token.
	ErrEmptyToken = errors.New("token is empty")
)
