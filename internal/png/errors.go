package png

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package is, or wraps, one
// of these; branch on them with errors.Is.
var (
	ErrEmptyInput        = errors.New("empty input")
	ErrBadSignature      = errors.New("invalid PNG signature")
	ErrMissingHeader     = errors.New("corrupted PNG: no IHDR")
	ErrMissingTerminator = errors.New("IEND is not the final PNG chunk")
	ErrNoData            = errors.New("PNG has no data")
	ErrCorruptChunk      = errors.New("corrupted or invalid chunk")
	ErrInvalidChunkSize  = errors.New("invalid chunk size")
	ErrInvalidFieldValue = errors.New("invalid field value")
	ErrInvalidBuffer     = errors.New("invalid file buffer")
	ErrUnsupportedKind   = errors.New("no decoder for chunk kind")

	// ErrIO is the category of failures loading bytes from storage. It is
	// never a format error.
	ErrIO = errors.New("file I/O")
)

// CorruptChunkError reports a header, payload or checksum region that does
// not fit in the buffer, including offsets whose computation overflowed.
type CorruptChunkError struct {
	Offset uint64
}

func (e *CorruptChunkError) Error() string {
	return fmt.Sprintf("corrupted or invalid chunk at offset 0x%08X", e.Offset)
}

func (e *CorruptChunkError) Unwrap() error { return ErrCorruptChunk }

// ChunkSizeError reports a payload length that violates the shape rule of
// the kind it was decoded as.
type ChunkSizeError struct {
	Kind   Type
	Length uint32
}

func (e *ChunkSizeError) Error() string {
	return fmt.Sprintf("%s chunk has an invalid size (%d)", e.Kind, e.Length)
}

func (e *ChunkSizeError) Unwrap() error { return ErrInvalidChunkSize }

// FieldValueError reports a field outside its closed value set when the
// set reserves no sentinel for it.
type FieldValueError struct {
	Kind  Type
	Field string
	Value uint64
}

func (e *FieldValueError) Error() string {
	return fmt.Sprintf("%s chunk: invalid %s (%d)", e.Kind, e.Field, e.Value)
}

func (e *FieldValueError) Unwrap() error { return ErrInvalidFieldValue }

type UnsupportedKindError struct {
	Kind Type
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("no decoder for %s chunks", e.Kind)
}

func (e *UnsupportedKindError) Unwrap() error { return ErrUnsupportedKind }

// IOError wraps a storage failure. errors.Is(err, ErrIO) holds for it, and
// the underlying os error stays reachable through errors.Is/As as well.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %q", e.Op, e.Path)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrIO}
	}
	return []error{ErrIO, e.Err}
}

// IsFormatError reports whether err describes a malformed file rather than
// a failure to load it.
func IsFormatError(err error) bool {
	if err == nil || errors.Is(err, ErrIO) {
		return false
	}
	for _, target := range []error{
		ErrEmptyInput,
		ErrBadSignature,
		ErrMissingHeader,
		ErrMissingTerminator,
		ErrNoData,
		ErrCorruptChunk,
		ErrInvalidChunkSize,
		ErrInvalidFieldValue,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func corrupt(offset uint64) error {
	return &CorruptChunkError{Offset: offset}
}
