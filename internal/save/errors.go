package save

import "errors"

var (
	// ErrSaveWrite wraps any I/O or encoding failure while writing a snapshot.
	ErrSaveWrite = errors.New("save write failed")
	// ErrSaveNotFound is returned when no snapshot matches the identifier.
	ErrSaveNotFound = errors.New("save not found")
	// ErrInvalidSaveFormat covers bad file names, bad compression and bad JSON.
	ErrInvalidSaveFormat = errors.New("invalid save format")
	// ErrIntegrityMismatch means the stored checksum does not match the payload.
	ErrIntegrityMismatch = errors.New("save integrity mismatch")
	// ErrCorruptSaveEntry marks a listing entry that could not be read.
	ErrCorruptSaveEntry = errors.New("corrupt save entry")
)
