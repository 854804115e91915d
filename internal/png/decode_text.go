package png

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// maxKeywordLen is the longest name or keyword a sPLT, tEXt or zTXt chunk
// may carry before its NUL separator.
const maxKeywordLen = 79

// splitKeyword returns the NUL-terminated keyword at the start of p and
// the bytes after the separator.
func splitKeyword(kind Type, field string, p []byte) (string, []byte, error) {
	i := bytes.IndexByte(p, 0)
	if i < 0 {
		return "", nil, &ChunkSizeError{Kind: kind, Length: uint32(len(p))}
	}
	if i == 0 || i > maxKeywordLen {
		return "", nil, &FieldValueError{Kind: kind, Field: field, Value: uint64(i)}
	}
	return latin1(p[:i]), p[i+1:], nil
}

// latin1 converts ISO 8859-1 bytes, the encoding of PNG keywords and tEXt
// text, to a UTF-8 string.
func latin1(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// SuggestedPalette is the sPLT chunk.
type SuggestedPalette struct {
	Name        string
	SampleDepth uint8
	Entries     int
}

func (SuggestedPalette) Kind() Type { return TypeSPLT }
func (SuggestedPalette) decoded()   {}

func decodeSuggestedPalette(c Chunk) (SuggestedPalette, error) {
	p, err := c.Payload()
	if err != nil {
		return SuggestedPalette{}, err
	}
	name, rest, err := splitKeyword(TypeSPLT, "name", p)
	if err != nil {
		return SuggestedPalette{}, err
	}
	if len(rest) == 0 {
		return SuggestedPalette{}, &ChunkSizeError{Kind: TypeSPLT, Length: uint32(len(p))}
	}

	depth := rest[0]
	var entrySize int
	switch depth {
	case 8:
		entrySize = 6 // RGBA 1 byte each + 2-byte frequency
	case 16:
		entrySize = 10
	default:
		return SuggestedPalette{}, &FieldValueError{Kind: TypeSPLT, Field: "sample_depth", Value: uint64(depth)}
	}

	entries := rest[1:]
	if len(entries) == 0 || len(entries)%entrySize != 0 {
		return SuggestedPalette{}, &ChunkSizeError{Kind: TypeSPLT, Length: uint32(len(p))}
	}
	return SuggestedPalette{
		Name:        name,
		SampleDepth: depth,
		Entries:     len(entries) / entrySize,
	}, nil
}

// Text is the tEXt chunk.
type Text struct {
	Keyword string
	Text    string
}

func (Text) Kind() Type { return TypeTEXT }
func (Text) decoded()   {}

func decodeText(c Chunk) (Text, error) {
	p, err := c.Payload()
	if err != nil {
		return Text{}, err
	}
	keyword, rest, err := splitKeyword(TypeTEXT, "keyword", p)
	if err != nil {
		return Text{}, err
	}
	return Text{Keyword: keyword, Text: latin1(rest)}, nil
}

// CompressedText is the zTXt chunk. The text stays compressed in the
// Buffer until Inflate is called.
type CompressedText struct {
	Keyword string
	Method  uint8

	chunk  Chunk
	stream int // payload offset of the zlib stream
	size   int
}

func (CompressedText) Kind() Type { return TypeZTXT }
func (CompressedText) decoded()   {}

// CompressedSize is the length of the zlib stream.
func (t CompressedText) CompressedSize() int {
	return t.size
}

// Inflate decompresses the text, failing when it would exceed limit bytes.
func (t CompressedText) Inflate(limit int64) (string, error) {
	p, err := t.chunk.Payload()
	if err != nil {
		return "", err
	}
	zr, err := zlib.NewReader(bytes.NewReader(p[t.stream:]))
	if err != nil {
		return "", fmt.Errorf("zTXt %q: %w", t.Keyword, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return "", fmt.Errorf("zTXt %q: %w", t.Keyword, err)
	}
	if int64(len(out)) > limit {
		return "", fmt.Errorf("zTXt %q: text exceeds %d bytes", t.Keyword, limit)
	}
	return latin1(out), nil
}

func decodeCompressedText(c Chunk) (CompressedText, error) {
	p, err := c.Payload()
	if err != nil {
		return CompressedText{}, err
	}
	keyword, rest, err := splitKeyword(TypeZTXT, "keyword", p)
	if err != nil {
		return CompressedText{}, err
	}
	if len(rest) == 0 {
		return CompressedText{}, &ChunkSizeError{Kind: TypeZTXT, Length: uint32(len(p))}
	}
	if rest[0] != 0 {
		return CompressedText{}, &FieldValueError{Kind: TypeZTXT, Field: "compression_method", Value: uint64(rest[0])}
	}
	return CompressedText{
		Keyword: keyword,
		Method:  rest[0],
		chunk:   c,
		stream:  len(p) - len(rest) + 1,
		size:    len(rest) - 1,
	}, nil
}
