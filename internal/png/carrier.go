package png

import (
	"errors"
	"fmt"
)

// Signature is the fixed 8-byte prefix of every PNG file.
const Signature = "\x89PNG\r\n\x1a\n"

const signatureSize = len(Signature)

// LibVersion is reported by the command line tool.
const LibVersion = "0.4.0"

// Carrier owns the bytes of one PNG file and the chunk chain found in
// them. A Carrier is only ever returned fully built: the chain starts with
// IHDR at offset 8, ends with IEND, and every chunk, checksum included,
// lies inside the file.
//
// A Carrier is safe for concurrent readers. Close releases the bytes;
// chunks obtained earlier then fail with ErrInvalidBuffer.
type Carrier struct {
	buf    *Buffer
	chunks []Chunk
}

// New parses a copy of b.
func New(b []byte) (*Carrier, error) {
	buf, err := NewBuffer(b)
	if err != nil {
		return nil, err
	}
	return newCarrier(buf)
}

// Open loads the whole file behind ref and parses it. Load failures are
// reported with ErrIO, never as format errors.
func Open(ref FileRef) (*Carrier, error) {
	size, err := ref.Size()
	if err != nil {
		return nil, asIOError(ref, "stat", err)
	}
	if size == 0 {
		return nil, fmt.Errorf("%s: %w", ref.Name(), ErrEmptyInput)
	}
	data, err := ref.Read(size)
	if err != nil {
		return nil, asIOError(ref, "read", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", ref.Name(), ErrEmptyInput)
	}
	return newCarrier(adoptBuffer(data))
}

func asIOError(ref FileRef, op string, err error) error {
	if errors.Is(err, ErrIO) {
		return err
	}
	return &IOError{Path: ref.Name(), Op: op, Err: err}
}

func newCarrier(buf *Buffer) (*Carrier, error) {
	c := &Carrier{buf: buf}
	if err := c.verifySignature(); err != nil {
		buf.Release()
		return nil, err
	}
	if err := c.gatherChunks(); err != nil {
		buf.Release()
		return nil, err
	}
	return c, nil
}

func (c *Carrier) verifySignature() error {
	data, ok := c.buf.bytes()
	if !ok {
		return ErrInvalidBuffer
	}
	if len(data) < signatureSize {
		return fmt.Errorf("%w: file is too small (%d bytes)", ErrBadSignature, len(data))
	}
	if string(data[:signatureSize]) != Signature {
		return ErrBadSignature
	}
	return nil
}

func (c *Carrier) gatherChunks() error {
	head := Chunk{buf: c.buf, offset: uint64(signatureSize)}
	tag, err := head.Tag()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMissingHeader, err)
	}
	if ParseType(tag) != TypeIHDR {
		return fmt.Errorf("%w: first chunk is %q", ErrMissingHeader, tag)
	}
	if err := head.validate(); err != nil {
		return err
	}

	chunks := []Chunk{head}
	for cur := head; ; {
		next, ok, err := cur.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := next.validate(); err != nil {
			return err
		}
		chunks = append(chunks, next)
		cur = next
	}

	if len(chunks) == 1 {
		return ErrNoData
	}
	last, err := chunks[len(chunks)-1].Type()
	if err != nil {
		return err
	}
	if last != TypeIEND {
		return fmt.Errorf("%w: last chunk is %s", ErrMissingTerminator, last)
	}

	c.chunks = chunks
	return nil
}

// Metadata decodes the IHDR chunk.
func (c *Carrier) Metadata() (Header, error) {
	if len(c.chunks) == 0 {
		return Header{}, ErrMissingHeader
	}
	if !c.buf.Live() {
		return Header{}, ErrInvalidBuffer
	}
	return decodeHeader(c.chunks[0])
}

// Chunks returns the chain in file order.
func (c *Carrier) Chunks() []Chunk {
	out := make([]Chunk, len(c.chunks))
	copy(out, c.chunks)
	return out
}

// Size is the length of the file in bytes.
func (c *Carrier) Size() int {
	return c.buf.Len()
}

func (c *Carrier) Close() {
	c.buf.Release()
}
