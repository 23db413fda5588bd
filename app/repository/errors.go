package repository

import "errors"

var (
	// ErrRecordNotFound is returned by every lookup that matches nothing.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a natural key (username, discord id, command
	// name) is already taken.
	ErrDuplicate = errors.New("duplicate record")
)
