package png

import (
	"encoding/binary"
	"time"
)

// Decoded is the typed record produced by Decode. The set of
// implementations is closed: Header, Palette, Timestamp, Chromaticity,
// Gamma, SRGB, PhysicalDimensions, SuggestedPalette, Histogram, Text,
// CompressedText and AnimationControl.
type Decoded interface {
	Kind() Type
	decoded()
}

// Decode interprets the payload of c as kind. The tag stored in c is not
// consulted, so a chunk can be read as any kind the caller asks for.
func Decode(c Chunk, kind Type) (Decoded, error) {
	if !c.buf.Live() {
		return nil, ErrInvalidBuffer
	}
	var (
		d   Decoded
		err error
	)
	switch kind {
	case TypeIHDR:
		d, err = decodeHeader(c)
	case TypePLTE:
		d, err = decodePalette(c)
	case TypeTIME:
		d, err = decodeTimestamp(c)
	case TypeCHRM:
		d, err = decodeChromaticity(c)
	case TypeGAMA:
		d, err = decodeGamma(c)
	case TypeSRGB:
		d, err = decodeSRGB(c)
	case TypePHYS:
		d, err = decodePhysicalDimensions(c)
	case TypeSPLT:
		d, err = decodeSuggestedPalette(c)
	case TypeHIST:
		d, err = decodeHistogram(c)
	case TypeTEXT:
		d, err = decodeText(c)
	case TypeZTXT:
		d, err = decodeCompressedText(c)
	case TypeACTL:
		d, err = decodeAnimationControl(c)
	default:
		return nil, &UnsupportedKindError{Kind: kind}
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// payloadOf checks the declared length against the kind's shape rule
// before touching the payload bytes.
func payloadOf(c Chunk, kind Type, valid func(n uint32) bool) ([]byte, error) {
	n, err := c.Length()
	if err != nil {
		return nil, err
	}
	if !valid(n) {
		return nil, &ChunkSizeError{Kind: kind, Length: n}
	}
	return c.Payload()
}

func exactly(size uint32) func(uint32) bool {
	return func(n uint32) bool { return n == size }
}

func multipleOf(step uint32) func(uint32) bool {
	return func(n uint32) bool { return n > 0 && n%step == 0 }
}

type ColorType uint8

const (
	ColorGrayscale      ColorType = 0
	ColorTruecolor      ColorType = 2
	ColorIndexed        ColorType = 3
	ColorGrayscaleAlpha ColorType = 4
	ColorTruecolorAlpha ColorType = 6
)

func (c ColorType) String() string {
	switch c {
	case ColorGrayscale:
		return "Grayscale"
	case ColorTruecolor:
		return "RGB"
	case ColorIndexed:
		return "Indexed color"
	case ColorGrayscaleAlpha:
		return "Grayscale + alpha"
	case ColorTruecolorAlpha:
		return "RGB + alpha"
	default:
		return "Invalid"
	}
}

type Compression uint8

const (
	CompressionDeflate Compression = iota
	CompressionInvalid
)

type FilterMethod uint8

const (
	FilterAdaptive FilterMethod = iota
	FilterInvalid
)

type Interlace uint8

const (
	InterlaceNone Interlace = iota
	InterlaceAdam7
	InterlaceInvalid
)

func (i Interlace) String() string {
	switch i {
	case InterlaceNone:
		return "None"
	case InterlaceAdam7:
		return "Adam7"
	default:
		return "Invalid"
	}
}

// Header is the IHDR chunk.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   ColorType
	Compression Compression
	Filter      FilterMethod
	Interlace   Interlace
}

func (Header) Kind() Type { return TypeIHDR }
func (Header) decoded()   {}

func decodeHeader(c Chunk) (Header, error) {
	p, err := payloadOf(c, TypeIHDR, exactly(13))
	if err != nil {
		return Header{}, err
	}

	h := Header{
		Width:       binary.BigEndian.Uint32(p[0:4]),
		Height:      binary.BigEndian.Uint32(p[4:8]),
		BitDepth:    p[8],
		Compression: CompressionInvalid,
		Filter:      FilterInvalid,
		Interlace:   InterlaceInvalid,
	}
	switch ct := ColorType(p[9]); ct {
	case ColorGrayscale, ColorTruecolor, ColorIndexed, ColorGrayscaleAlpha, ColorTruecolorAlpha:
		h.ColorType = ct
	default:
		return Header{}, &FieldValueError{Kind: TypeIHDR, Field: "color_type", Value: uint64(p[9])}
	}
	// Only deflate and adaptive filtering are defined; anything else is
	// kept visible as an Invalid value rather than failing the record.
	if p[10] == 0 {
		h.Compression = CompressionDeflate
	}
	if p[11] == 0 {
		h.Filter = FilterAdaptive
	}
	switch p[12] {
	case 0:
		h.Interlace = InterlaceNone
	case 1:
		h.Interlace = InterlaceAdam7
	}
	return h, nil
}

// Palette is the PLTE chunk: Entries RGB triplets.
type Palette struct {
	Entries int
}

func (Palette) Kind() Type { return TypePLTE }
func (Palette) decoded()   {}

func decodePalette(c Chunk) (Palette, error) {
	p, err := payloadOf(c, TypePLTE, multipleOf(3))
	if err != nil {
		return Palette{}, err
	}
	return Palette{Entries: len(p) / 3}, nil
}

// Histogram is the hIST chunk: one 16-bit frequency per palette entry.
type Histogram struct {
	Entries int
}

func (Histogram) Kind() Type { return TypeHIST }
func (Histogram) decoded()   {}

func decodeHistogram(c Chunk) (Histogram, error) {
	p, err := payloadOf(c, TypeHIST, multipleOf(2))
	if err != nil {
		return Histogram{}, err
	}
	return Histogram{Entries: len(p) / 2}, nil
}

// Timestamp is the tIME chunk, the last modification time in UTC. Field
// values are reported as stored, without range checks.
type Timestamp struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

func (Timestamp) Kind() Type { return TypeTIME }
func (Timestamp) decoded()   {}

// Time converts the stored fields. Out-of-range values are normalized the
// way time.Date does.
func (t Timestamp) Time() time.Time {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day),
		int(t.Hour), int(t.Minute), int(t.Second), 0, time.UTC)
}

func decodeTimestamp(c Chunk) (Timestamp, error) {
	p, err := payloadOf(c, TypeTIME, exactly(7))
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{
		Year:   binary.BigEndian.Uint16(p[0:2]),
		Month:  p[2],
		Day:    p[3],
		Hour:   p[4],
		Minute: p[5],
		Second: p[6],
	}, nil
}

// fixedPointScale converts the stored integers of cHRM and gAMA.
const fixedPointScale = 100000.0

// Chromaticity is the cHRM chunk, CIE 1931 x,y coordinates.
type Chromaticity struct {
	WhiteX, WhiteY float64
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
}

func (Chromaticity) Kind() Type { return TypeCHRM }
func (Chromaticity) decoded()   {}

var chromaticityFields = [8]string{
	"white_x", "white_y",
	"red_x", "red_y",
	"green_x", "green_y",
	"blue_x", "blue_y",
}

func decodeChromaticity(c Chunk) (Chromaticity, error) {
	p, err := payloadOf(c, TypeCHRM, exactly(32))
	if err != nil {
		return Chromaticity{}, err
	}

	var v [8]float64
	for i := range v {
		raw := binary.BigEndian.Uint32(p[i*4 : i*4+4])
		if raw == 0 {
			return Chromaticity{}, &FieldValueError{Kind: TypeCHRM, Field: chromaticityFields[i]}
		}
		v[i] = float64(raw) / fixedPointScale
	}
	return Chromaticity{
		WhiteX: v[0], WhiteY: v[1],
		RedX: v[2], RedY: v[3],
		GreenX: v[4], GreenY: v[5],
		BlueX: v[6], BlueY: v[7],
	}, nil
}

// Gamma is the gAMA chunk.
type Gamma struct {
	Value float64
}

func (Gamma) Kind() Type { return TypeGAMA }
func (Gamma) decoded()   {}

func decodeGamma(c Chunk) (Gamma, error) {
	p, err := payloadOf(c, TypeGAMA, exactly(4))
	if err != nil {
		return Gamma{}, err
	}
	raw := binary.BigEndian.Uint32(p)
	if raw == 0 {
		return Gamma{}, &FieldValueError{Kind: TypeGAMA, Field: "gamma"}
	}
	return Gamma{Value: float64(raw) / fixedPointScale}, nil
}

type Intent uint8

const (
	IntentPerceptual Intent = iota
	IntentRelativeColorimetric
	IntentSaturation
	IntentAbsoluteColorimetric
	IntentInvalid
)

func (i Intent) String() string {
	switch i {
	case IntentPerceptual:
		return "Perceptual"
	case IntentRelativeColorimetric:
		return "Relative colorimetric"
	case IntentSaturation:
		return "Saturation"
	case IntentAbsoluteColorimetric:
		return "Absolute colorimetric"
	default:
		return "Invalid"
	}
}

// SRGB is the sRGB chunk, carrying the rendering intent.
type SRGB struct {
	Intent Intent
}

func (SRGB) Kind() Type { return TypeSRGB }
func (SRGB) decoded()   {}

func decodeSRGB(c Chunk) (SRGB, error) {
	p, err := payloadOf(c, TypeSRGB, exactly(1))
	if err != nil {
		return SRGB{}, err
	}
	if p[0] >= uint8(IntentInvalid) {
		return SRGB{Intent: IntentInvalid}, nil
	}
	return SRGB{Intent: Intent(p[0])}, nil
}

type Unit uint8

const (
	UnitUnspecified Unit = iota
	UnitMeters
	UnitInvalid
)

func (u Unit) String() string {
	switch u {
	case UnitUnspecified:
		return "Not specified"
	case UnitMeters:
		return "Meters"
	default:
		return "Invalid"
	}
}

// PhysicalDimensions is the pHYs chunk. With UnitUnspecified the pair only
// describes the pixel aspect ratio.
type PhysicalDimensions struct {
	PPUX uint32
	PPUY uint32
	Unit Unit
}

func (PhysicalDimensions) Kind() Type { return TypePHYS }
func (PhysicalDimensions) decoded()   {}

func decodePhysicalDimensions(c Chunk) (PhysicalDimensions, error) {
	p, err := payloadOf(c, TypePHYS, exactly(9))
	if err != nil {
		return PhysicalDimensions{}, err
	}
	d := PhysicalDimensions{
		PPUX: binary.BigEndian.Uint32(p[0:4]),
		PPUY: binary.BigEndian.Uint32(p[4:8]),
		Unit: UnitInvalid,
	}
	if p[8] <= uint8(UnitMeters) {
		d.Unit = Unit(p[8])
	}
	return d, nil
}

// AnimationControl is the APNG acTL chunk. Plays == 0 loops forever.
type AnimationControl struct {
	Frames uint32
	Plays  uint32
}

func (AnimationControl) Kind() Type { return TypeACTL }
func (AnimationControl) decoded()   {}

func decodeAnimationControl(c Chunk) (AnimationControl, error) {
	p, err := payloadOf(c, TypeACTL, exactly(8))
	if err != nil {
		return AnimationControl{}, err
	}
	frames := binary.BigEndian.Uint32(p[0:4])
	if frames == 0 {
		return AnimationControl{}, &FieldValueError{Kind: TypeACTL, Field: "num_frames"}
	}
	return AnimationControl{Frames: frames, Plays: binary.BigEndian.Uint32(p[4:8])}, nil
}
