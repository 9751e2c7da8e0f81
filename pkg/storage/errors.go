package storage

import "errors"

var (
	// ErrNotFound indicates the requested blob does not exist.
	ErrNotFound = errors.New("blob not found")
	// ErrEmptyKey indicates an empty blob key was provided.
	ErrEmptyKey = errors.New("blob key is empty")
	// ErrInvalidKey indicates a blob key containing path traversal sequences.
	ErrInvalidKey = errors.New("blob key is invalid")
	// ErrUnknownBucket indicates a bucket outside the configured set.
	ErrUnknownBucket = errors.New("unknown storage bucket")
)
