package handler

import "errors"

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidID = errors.New("provided an invalid ID")
)
