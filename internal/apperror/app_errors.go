package apperror

import "errors"

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrCorruptedState       = errors.New("stored game state is corrupted")
	ErrUnknownAction        = errors.New("unknown action")
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)
