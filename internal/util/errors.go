package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrContentNotFound    = errors.New("content not found")
	ErrInvalidParent      = errors.New("invalid parent topic")
	ErrInvalidTopic       = errors.New("invalid topic")
	ErrInvalidContentType = errors.New("invalid content type")
)
