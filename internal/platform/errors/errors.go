package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrBusy            = errors.New("another action is in progress")
	ErrAlreadyRunning  = errors.New("already running")
	ErrNotRunning      = errors.New("not running")
	ErrEmptyCollection = errors.New("empty collection")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrEmptyMessage    = errors.New("empty message")
)
