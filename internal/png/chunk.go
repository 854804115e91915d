package png

import (
	"encoding/binary"
	"math/bits"
)

const (
	headerSize   = 8 // length(4) + tag(4)
	checksumSize = 4
)

// Type is the kind of a chunk, derived from its 4-byte tag.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeIHDR
	TypeIDAT
	TypeIEND
	TypeBKGD
	TypeCHRM
	TypeGAMA
	TypeHIST
	TypeICCP
	TypeIPCT // deprecated ICC profile tag
	TypeSBIT
	TypeSRGB
	TypeTEXT
	TypeZTXT
	TypeITXT
	TypeTIME
	TypePHYS
	TypeSPLT
	TypeTRNS
	TypePLTE
	TypeACTL
	TypeFCTL
	TypeFDAT
)

var typeTags = [...]string{
	TypeUnknown: "Unknown",
	TypeIHDR:    "IHDR",
	TypeIDAT:    "IDAT",
	TypeIEND:    "IEND",
	TypeBKGD:    "bKGD",
	TypeCHRM:    "cHRM",
	TypeGAMA:    "gAMA",
	TypeHIST:    "hIST",
	TypeICCP:    "iCCP",
	TypeIPCT:    "IPCT",
	TypeSBIT:    "sBIT",
	TypeSRGB:    "sRGB",
	TypeTEXT:    "tEXt",
	TypeZTXT:    "zTXt",
	TypeITXT:    "iTXt",
	TypeTIME:    "tIME",
	TypePHYS:    "pHYs",
	TypeSPLT:    "sPLT",
	TypeTRNS:    "tRNS",
	TypePLTE:    "PLTE",
	TypeACTL:    "acTL",
	TypeFCTL:    "fcTL",
	TypeFDAT:    "fdAT",
}

var tagTypes = func() map[string]Type {
	m := make(map[string]Type, len(typeTags))
	for t, tag := range typeTags {
		if Type(t) == TypeUnknown {
			continue
		}
		m[tag] = Type(t)
	}
	return m
}()

// ParseType maps a tag to its Type. Tags outside the known set are
// TypeUnknown; that is not an error.
func ParseType(tag string) Type {
	if t, ok := tagTypes[tag]; ok {
		return t
	}
	return TypeUnknown
}

func (t Type) String() string {
	if int(t) < len(typeTags) {
		return typeTags[t]
	}
	return typeTags[TypeUnknown]
}

// Critical reports whether the type is one of the four chunks every
// decoder must understand.
func (t Type) Critical() bool {
	switch t {
	case TypeIHDR, TypePLTE, TypeIDAT, TypeIEND:
		return true
	default:
		return false
	}
}

// Chunk is a cursor at the 8-byte header of one chunk. It does not copy
// anything: each accessor re-reads the Buffer and checks bounds first.
type Chunk struct {
	buf    *Buffer
	offset uint64
}

// Offset is the position of the chunk header from the start of the file.
func (c Chunk) Offset() uint64 {
	return c.offset
}

// DataOffset is the position of the first payload byte.
func (c Chunk) DataOffset() uint64 {
	return c.offset + headerSize
}

func (c Chunk) header() ([]byte, error) {
	data, ok := c.buf.bytes()
	if !ok {
		return nil, ErrInvalidBuffer
	}
	last, carry := bits.Add64(c.offset, headerSize-1, 0)
	if carry != 0 || last >= uint64(len(data)) {
		return nil, corrupt(c.offset)
	}
	return data[c.offset : last+1], nil
}

// Tag returns the raw 4-byte type tag.
func (c Chunk) Tag() (string, error) {
	h, err := c.header()
	if err != nil {
		return "", err
	}
	return string(h[4:8]), nil
}

func (c Chunk) Type() (Type, error) {
	tag, err := c.Tag()
	if err != nil {
		return TypeUnknown, err
	}
	return ParseType(tag), nil
}

// Length returns the payload length. The field is big-endian on disk.
func (c Chunk) Length() (uint32, error) {
	h, err := c.header()
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(h[0:4]), nil
}

// span returns the buffer along with the payload end and checksum end
// offsets. Ends are exclusive and computed without wrapping.
func (c Chunk) span() (data []byte, payloadEnd, checksumEnd uint64, err error) {
	h, err := c.header()
	if err != nil {
		return nil, 0, 0, err
	}
	data, ok := c.buf.bytes()
	if !ok {
		return nil, 0, 0, ErrInvalidBuffer
	}
	length := uint64(binary.BigEndian.Uint32(h[0:4]))

	payloadEnd, carry := bits.Add64(c.offset, headerSize, 0)
	payloadEnd, carry = bits.Add64(payloadEnd, length, carry)
	if carry != 0 {
		return nil, 0, 0, corrupt(c.offset)
	}
	checksumEnd, carry = bits.Add64(payloadEnd, checksumSize, 0)
	if carry != 0 {
		return nil, 0, 0, corrupt(c.offset)
	}
	return data, payloadEnd, checksumEnd, nil
}

// Payload returns the chunk data. The slice aliases the Buffer and must
// not be modified.
func (c Chunk) Payload() ([]byte, error) {
	data, end, _, err := c.span()
	if err != nil {
		return nil, err
	}
	if end > uint64(len(data)) {
		return nil, corrupt(c.offset)
	}
	return data[c.DataOffset():end:end], nil
}

// Checksum returns the stored CRC-32. It is read, never verified.
func (c Chunk) Checksum() (uint32, error) {
	data, end, crcEnd, err := c.span()
	if err != nil {
		return 0, err
	}
	if crcEnd > uint64(len(data)) {
		return 0, corrupt(c.offset)
	}
	return binary.BigEndian.Uint32(data[end:crcEnd]), nil
}

// Next returns the chunk that follows c. ok is false at the end of the
// chain: after IEND, or when the following header would start at or past
// the end of the buffer.
func (c Chunk) Next() (next Chunk, ok bool, err error) {
	h, err := c.header()
	if err != nil {
		return Chunk{}, false, err
	}
	if ParseType(string(h[4:8])) == TypeIEND {
		return Chunk{}, false, nil
	}

	length := uint64(binary.BigEndian.Uint32(h[0:4]))
	off, carry := bits.Add64(c.offset, headerSize+checksumSize, 0)
	off, carry = bits.Add64(off, length, carry)
	if carry != 0 || off >= uint64(c.buf.Len()) {
		return Chunk{}, false, nil
	}
	return Chunk{buf: c.buf, offset: off}, true, nil
}

// Decode interprets the chunk payload as the given kind.
func (c Chunk) Decode(kind Type) (Decoded, error) {
	return Decode(c, kind)
}

// validate checks that the whole chunk, checksum included, lies in the
// buffer.
func (c Chunk) validate() error {
	_, err := c.Checksum()
	return err
}
