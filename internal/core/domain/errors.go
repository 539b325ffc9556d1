package domain

import "errors"

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTaskID       = errors.New("invalid task id")
	ErrViewSessionNotFound = errors.New("view session not found")
	ErrUnknownFilterField  = errors.New("unknown filter field")
)
