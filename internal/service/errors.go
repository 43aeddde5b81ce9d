package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailOrUsernameTaken = errors.New("email or username is already taken")
	ErrCannotFollowSelf = errors.New("you cannot send a follow request to yourself")
)
