package cli

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autobrr/go-pngchunks/internal/png"
)

type testChunk struct {
	tag     string
	payload []byte
}

func buildPNG(chunks ...testChunk) []byte {
	var buf bytes.Buffer
	buf.WriteString(png.Signature)
	for _, c := range chunks {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(c.payload)))
		buf.Write(n[:])
		buf.WriteString(c.tag)
		buf.Write(c.payload)
		binary.BigEndian.PutUint32(n[:], crc32.ChecksumIEEE(append([]byte(c.tag), c.payload...)))
		buf.Write(n[:])
	}
	return buf.Bytes()
}

func sampleChunks() []testChunk {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], 2)
	binary.BigEndian.PutUint32(ihdr[4:8], 3)
	ihdr[8] = 8
	ihdr[9] = 2
	return []testChunk{
		{"IHDR", ihdr},
		{"tEXt", []byte("Author\x00someone")},
		{"IDAT", []byte{0x78, 0x9c, 0x01}},
		{"IEND", nil},
	}
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	return writeFile(t, dir, name, buildPNG(sampleChunks()...))
}

type runResult struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args ...string) runResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(append([]string{"pngchunks", "--no-color"}, args...), &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}
