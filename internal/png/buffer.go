package png

import "sync/atomic"

// Buffer holds the raw bytes of one file. The contents never change after
// NewBuffer returns; Release ends the buffer's lifetime, after which every
// Chunk referring to it reports ErrInvalidBuffer instead of reading.
type Buffer struct {
	data atomic.Pointer[[]byte]
	size int
}

// NewBuffer copies b into a new Buffer.
func NewBuffer(b []byte) (*Buffer, error) {
	if len(b) == 0 {
		return nil, ErrEmptyInput
	}
	owned := make([]byte, len(b))
	copy(owned, b)
	return adoptBuffer(owned), nil
}

// adoptBuffer takes ownership of b without copying. Callers must not keep
// a reference to b.
func adoptBuffer(b []byte) *Buffer {
	buf := &Buffer{size: len(b)}
	buf.data.Store(&b)
	return buf
}

// Len returns the size of the buffer as constructed, even after Release.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return b.size
}

// Live reports whether the buffer can still be read.
func (b *Buffer) Live() bool {
	_, ok := b.bytes()
	return ok
}

// Release drops the buffer's bytes. It is safe to call more than once and
// concurrently with readers.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	b.data.Store(nil)
}

func (b *Buffer) bytes() ([]byte, bool) {
	if b == nil {
		return nil, false
	}
	p := b.data.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}
