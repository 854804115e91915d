package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/autobrr/go-pngchunks/internal/png"
)

// MaxInflatedText bounds how much zTXt text is decompressed for display.
const MaxInflatedText = 1 << 20

// ChunkFields lists what is known about c: its position, length and stored
// CRC, followed by the decoded fields when the chunk kind has a decoder.
func ChunkFields(c png.Chunk) ([]Field, error) {
	fields, err := baseFields(c)
	if err != nil {
		return nil, err
	}
	d, err := decodeChunk(c)
	if err != nil {
		return nil, err
	}
	return append(fields, decodedFields(d)...), nil
}

func baseFields(c png.Chunk) ([]Field, error) {
	length, err := c.Length()
	if err != nil {
		return nil, err
	}
	crc, err := c.Checksum()
	if err != nil {
		return nil, err
	}
	return []Field{
		{Name: "Offsets", Value: fmt.Sprintf("Header: %s, Data: %s", formatOffset(c.Offset()), formatOffset(c.DataOffset()))},
		{Name: "Length", Value: strconv.FormatUint(uint64(length), 10)},
		{Name: "CRC32", Value: fmt.Sprintf("%08X", crc)},
	}, nil
}

// decodeChunk returns nil for kinds without a decoder.
func decodeChunk(c png.Chunk) (png.Decoded, error) {
	tag, err := c.Tag()
	if err != nil {
		return nil, err
	}
	d, err := c.Decode(png.ParseType(tag))
	if errors.Is(err, png.ErrUnsupportedKind) {
		return nil, nil
	}
	return d, err
}

func decodedFields(d png.Decoded) []Field {
	switch v := d.(type) {
	case png.Header:
		compression := "Unknown"
		if v.Compression == png.CompressionDeflate {
			compression = "Deflate (0)"
		}
		filter := "Unknown"
		if v.Filter == png.FilterAdaptive {
			filter = "Default (0)"
		}
		return []Field{
			{Name: "Width", Value: formatPixels(v.Width)},
			{Name: "Height", Value: formatPixels(v.Height)},
			{Name: "Bit depth", Value: formatBitDepth(v.BitDepth)},
			{Name: "Interlacing", Value: v.Interlace.String()},
			{Name: "Color", Value: v.ColorType.String()},
			{Name: "Compression", Value: compression},
			{Name: "Filtering", Value: filter},
		}
	case png.Palette:
		return []Field{{Name: "Entries", Value: strconv.Itoa(v.Entries)}}
	case png.Histogram:
		return []Field{{Name: "Entries", Value: strconv.Itoa(v.Entries)}}
	case png.Timestamp:
		return []Field{{Name: "Timestamp", Value: fmt.Sprintf("%s %d %d %02d:%02d:%02d UTC",
			formatMonth(v.Month), v.Day, v.Year, v.Hour, v.Minute, v.Second)}}
	case png.Chromaticity:
		return []Field{
			{Name: "White point", Value: formatXY(v.WhiteX, v.WhiteY)},
			{Name: "Red", Value: formatXY(v.RedX, v.RedY)},
			{Name: "Green", Value: formatXY(v.GreenX, v.GreenY)},
			{Name: "Blue", Value: formatXY(v.BlueX, v.BlueY)},
		}
	case png.Gamma:
		return []Field{{Name: "Gamma", Value: strconv.FormatFloat(v.Value, 'f', -1, 64)}}
	case png.SRGB:
		return []Field{{Name: "Intent", Value: v.Intent.String()}}
	case png.PhysicalDimensions:
		return []Field{
			{Name: "Units", Value: v.Unit.String()},
			{Name: "Dimensions", Value: fmt.Sprintf("%dx%d", v.PPUX, v.PPUY)},
		}
	case png.SuggestedPalette:
		return []Field{
			{Name: "Name", Value: v.Name},
			{Name: "Sample depth", Value: formatBitDepth(v.SampleDepth)},
			{Name: "Entries", Value: strconv.Itoa(v.Entries)},
		}
	case png.Text:
		return []Field{
			{Name: "Keyword", Value: v.Keyword},
			{Name: "Text", Value: strconv.Quote(v.Text)},
		}
	case png.CompressedText:
		text, err := v.Inflate(MaxInflatedText)
		value := strconv.Quote(text)
		if err != nil {
			value = "unreadable: " + err.Error()
		}
		return []Field{
			{Name: "Keyword", Value: v.Keyword},
			{Name: "Compressed", Value: formatBytes(int64(v.CompressedSize()))},
			{Name: "Text", Value: value},
		}
	case png.AnimationControl:
		plays := "Infinite"
		if v.Plays > 0 {
			plays = strconv.FormatUint(uint64(v.Plays), 10)
		}
		return []Field{
			{Name: "Frames", Value: formatCount(int(v.Frames), "frame")},
			{Name: "Plays", Value: plays},
		}
	}
	return nil
}

func formatXY(x, y float64) string {
	return fmt.Sprintf("X=%s, Y=%s", strconv.FormatFloat(x, 'f', -1, 64), strconv.FormatFloat(y, 'f', -1, 64))
}

// RenderChunk writes the verbose description of one chunk. A chunk whose
// payload does not decode is still listed, with the decode error in place of
// its fields.
func RenderChunk(w io.Writer, st Style, c png.Chunk) error {
	tag, err := c.Tag()
	if err != nil {
		return err
	}
	fields, err := baseFields(c)
	if err != nil {
		return err
	}
	d, err := decodeChunk(c)
	switch {
	case err == nil:
		fields = append(fields, decodedFields(d)...)
	case png.IsFormatError(err):
		fields = append(fields, Field{Name: errorField, Value: err.Error()})
	default:
		return err
	}
	return writeSection(w, st, tag, fields)
}

// RenderDump writes the payload of c as a hex dump under the chunk tag.
func RenderDump(w io.Writer, st Style, c png.Chunk) error {
	tag, err := c.Tag()
	if err != nil {
		return err
	}
	p, err := c.Payload()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "-- %s payload at %s\n", st.Title.Sprint(tag), formatOffset(c.DataOffset())); err != nil {
		return err
	}
	if err := HexDump(w, p); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
