package vector

import "errors"

var (
	ErrEmpty        = errors.New("vector: empty")
	ErrOutOfRange   = errors.New("vector: index out of range")
	ErrUnsupported  = errors.New("vector: unsupported element type")
	ErrCorrupt      = errors.New("vector: corrupt snapshot")
	ErrChecksum     = errors.New("vector: crc mismatch")
	ErrKindMismatch = errors.New("vector: element kind mismatch")
)
