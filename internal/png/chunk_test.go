package png

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	cases := []struct {
		tag  string
		want Type
	}{
		{tag: "IHDR", want: TypeIHDR},
		{tag: "IEND", want: TypeIEND},
		{tag: "sPLT", want: TypeSPLT},
		{tag: "acTL", want: TypeACTL},
		{tag: "ihdr", want: TypeUnknown},
		{tag: "abcd", want: TypeUnknown},
		{tag: "", want: TypeUnknown},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ParseType(tc.tag), tc.tag)
	}
	require.Equal(t, "gAMA", TypeGAMA.String())
	require.Equal(t, "Unknown", Type(200).String())
	require.True(t, TypePLTE.Critical())
	require.False(t, TypeTEXT.Critical())
}

func TestChunkHeaderFields(t *testing.T) {
	c := chunkAt(t, "gAMA", u32(45455))

	tag, err := c.Tag()
	require.NoError(t, err)
	require.Equal(t, "gAMA", tag)

	typ, err := c.Type()
	require.NoError(t, err)
	require.Equal(t, TypeGAMA, typ)

	n, err := c.Length()
	require.NoError(t, err)
	require.EqualValues(t, 4, n)

	p, err := c.Payload()
	require.NoError(t, err)
	require.Equal(t, u32(45455), p)

	sum, err := c.Checksum()
	require.NoError(t, err)
	require.NotZero(t, sum)

	require.EqualValues(t, 0, c.Offset())
	require.EqualValues(t, 8, c.DataOffset())
}

func TestChunkUnknownTagIsNotAnError(t *testing.T) {
	c := chunkAt(t, "vpAg", []byte{1, 2, 3})
	typ, err := c.Type()
	require.NoError(t, err)
	require.Equal(t, TypeUnknown, typ)
}

func TestChunkLengthIsBigEndian(t *testing.T) {
	raw := []byte{0x00, 0x01, 0x02, 0x03, 'I', 'D', 'A', 'T'}
	b, err := NewBuffer(raw)
	require.NoError(t, err)

	n, err := Chunk{buf: b}.Length()
	require.NoError(t, err)

	want := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	require.Equal(t, want, n)
	require.EqualValues(t, 0x00010203, n)

	// A little-endian host reading the field natively would see the
	// reversed bytes; the result must not depend on that.
	swapped := []byte{raw[3], raw[2], raw[1], raw[0]}
	require.Equal(t, binary.LittleEndian.Uint32(swapped), n)
}

func TestChunkHeaderOutOfBounds(t *testing.T) {
	b, err := NewBuffer(make([]byte, 12))
	require.NoError(t, err)

	c := Chunk{buf: b, offset: 5}
	_, err = c.Tag()
	var ce *CorruptChunkError
	require.ErrorAs(t, err, &ce)
	require.EqualValues(t, 5, ce.Offset)

	_, err = c.Length()
	require.ErrorIs(t, err, ErrCorruptChunk)

	_, _, err = c.Next()
	require.ErrorIs(t, err, ErrCorruptChunk)

	// Offset 4 leaves exactly 8 bytes: the header is readable.
	_, err = Chunk{buf: b, offset: 4}.Tag()
	require.NoError(t, err)
}

func TestChunkOffsetOverflow(t *testing.T) {
	b, err := NewBuffer(make([]byte, 16))
	require.NoError(t, err)

	c := Chunk{buf: b, offset: math.MaxUint64 - 3}
	_, err = c.Tag()
	require.ErrorIs(t, err, ErrCorruptChunk)
	_, err = c.Checksum()
	require.ErrorIs(t, err, ErrCorruptChunk)
}

func TestChunkHugeLength(t *testing.T) {
	raw := make([]byte, 32)
	binary.BigEndian.PutUint32(raw[0:4], math.MaxUint32)
	copy(raw[4:8], "IDAT")
	b, err := NewBuffer(raw)
	require.NoError(t, err)
	c := Chunk{buf: b}

	_, err = c.Payload()
	require.ErrorIs(t, err, ErrCorruptChunk)
	_, err = c.Checksum()
	require.ErrorIs(t, err, ErrCorruptChunk)

	_, ok, err := c.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestChunkNextBoundary(t *testing.T) {
	// A 4-byte payload puts the following header at 8+4+4 = 16.
	raw := make([]byte, 24)
	binary.BigEndian.PutUint32(raw[0:4], 4)
	copy(raw[4:8], "gAMA")

	cases := []struct {
		size   int
		wantOK bool
	}{
		{size: 15, wantOK: false}, // one byte short of the checksum end
		{size: 16, wantOK: false}, // next header would start at the end
		{size: 17, wantOK: true},
	}

	for _, tc := range cases {
		b, err := NewBuffer(raw[:tc.size])
		require.NoError(t, err)
		c := Chunk{buf: b}

		next, ok, err := c.Next()
		require.NoError(t, err, "size %d", tc.size)
		require.Equal(t, tc.wantOK, ok, "size %d", tc.size)
		if ok {
			require.EqualValues(t, 16, next.Offset())
		}
	}

	b, err := NewBuffer(raw[:15])
	require.NoError(t, err)
	_, err = Chunk{buf: b}.Checksum()
	require.ErrorIs(t, err, ErrCorruptChunk)
}

func TestChunkNextAfterIEND(t *testing.T) {
	raw := buildPNG(minimalChunks()...)
	raw = append(raw, make([]byte, 64)...)
	b, err := NewBuffer(raw)
	require.NoError(t, err)

	iend := Chunk{buf: b, offset: uint64(len(raw) - 64 - 12)}
	typ, err := iend.Type()
	require.NoError(t, err)
	require.Equal(t, TypeIEND, typ)

	_, ok, err := iend.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestChunkReleasedBuffer(t *testing.T) {
	c := chunkAt(t, "gAMA", u32(100))
	c.buf.Release()
	c.buf.Release()

	_, err := c.Tag()
	require.ErrorIs(t, err, ErrInvalidBuffer)
	_, err = c.Length()
	require.ErrorIs(t, err, ErrInvalidBuffer)
	_, err = c.Checksum()
	require.ErrorIs(t, err, ErrInvalidBuffer)
	_, _, err = c.Next()
	require.ErrorIs(t, err, ErrInvalidBuffer)
	_, err = c.Decode(TypeGAMA)
	require.ErrorIs(t, err, ErrInvalidBuffer)
	require.False(t, errors.Is(err, ErrCorruptChunk))
	require.Equal(t, 16, c.buf.Len())
}

func TestZeroChunk(t *testing.T) {
	var c Chunk
	_, err := c.Tag()
	require.ErrorIs(t, err, ErrInvalidBuffer)
	_, err = Decode(c, TypeIHDR)
	require.ErrorIs(t, err, ErrInvalidBuffer)
}

func TestNewBufferEmpty(t *testing.T) {
	_, err := NewBuffer(nil)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = NewBuffer([]byte{})
	require.ErrorIs(t, err, ErrEmptyInput)
}
