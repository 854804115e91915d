package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

type testChunk struct {
	tag     string
	payload []byte
}

func writeChunk(buf *bytes.Buffer, tag string, payload []byte) {
	if err := binary.Write(buf, binary.BigEndian, uint32(len(payload))); err != nil {
		panic(err)
	}
	buf.WriteString(tag)
	buf.Write(payload)

	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(payload)
	if err := binary.Write(buf, binary.BigEndian, crc.Sum32()); err != nil {
		panic(err)
	}
}

func buildPNG(chunks ...testChunk) []byte {
	var buf bytes.Buffer
	buf.WriteString(Signature)
	for _, c := range chunks {
		writeChunk(&buf, c.tag, c.payload)
	}
	return buf.Bytes()
}

func ihdrPayload(width, height uint32, depth, colorType, compression, filter, interlace byte) []byte {
	p := make([]byte, 13)
	binary.BigEndian.PutUint32(p[0:4], width)
	binary.BigEndian.PutUint32(p[4:8], height)
	p[8] = depth
	p[9] = colorType
	p[10] = compression
	p[11] = filter
	p[12] = interlace
	return p
}

func minimalChunks() []testChunk {
	return []testChunk{
		{"IHDR", ihdrPayload(16, 9, 8, 2, 0, 0, 0)},
		{"IDAT", []byte{0x78, 0x9c, 0x01, 0x02}},
		{"IEND", nil},
	}
}

// chunkAt returns a cursor over a buffer holding a single chunk at offset 0.
func chunkAt(t *testing.T, tag string, payload []byte) Chunk {
	t.Helper()
	var buf bytes.Buffer
	writeChunk(&buf, tag, payload)
	b, err := NewBuffer(buf.Bytes())
	require.NoError(t, err)
	return Chunk{buf: b}
}

func u32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}
