package util

import "errors"

var (
	ErrStudentIDTaken       = errors.New("student id already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnknownTopic         = errors.New("unknown topic")
	ErrUnknownDifficulty    = errors.New("unknown difficulty level")
	ErrAttemptNotFound      = errors.New("test attempt not found or expired")
	ErrTestAlreadySubmitted = errors.New("test already submitted")
)
