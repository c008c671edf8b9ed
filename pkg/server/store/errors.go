package store

import "errors"

var (
	// ErrNotFound is returned when a requested row doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a row with the same key exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrEmptyResult is returned when a query that must match rows matched none
	ErrEmptyResult = errors.New("empty result")
)
