package qoi

import "encoding/binary"

const headerSize = 14

// MagicBytes is the 4-byte magic prefix of every QOI stream, exposed for
// callers that want to register this codec with image.RegisterFormat.
const MagicBytes = "qoif"

var magicBytes = [4]byte{'q', 'o', 'i', 'f'}

// ColorSpace is the informational header byte describing how alpha and
// color channels are meant to be interpreted downstream. It never affects
// the encode/decode pixel math.
type ColorSpace uint8

const (
	// SRGBLinearAlpha is sRGB color with linearly-encoded alpha.
	SRGBLinearAlpha ColorSpace = 0
	// AllLinear is all channels in linear light.
	AllLinear ColorSpace = 1
)

func (cs ColorSpace) valid() bool {
	return cs == SRGBLinearAlpha || cs == AllLinear
}

// Channels is the number of color channels stored in a QOI stream: 3 (RGB)
// or 4 (RGBA).
type Channels uint8

const (
	// Rgb is a 3-channel image (no stored alpha).
	Rgb Channels = 3
	// Rgba is a 4-channel image.
	Rgba Channels = 4
)

func (c Channels) valid() bool {
	return c == Rgb || c == Rgba
}

// Header is the fixed 14-byte QOI header: magic, dimensions, channel count
// and color space.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	ColorSpace ColorSpace
}

// NPixels returns Width*Height as a platform int. Callers must only use
// this after the header has been validated (via DecodeHeader or
// newHeader), which guarantees no overflow.
func (h Header) NPixels() int {
	return int(h.Width) * int(h.Height)
}

// EncodeMaxLen returns the maximum number of bytes an encoded stream with
// this header can take: header + worst case one-byte-opcode-plus-full-pixel
// per pixel + 8-byte padding.
func (h Header) EncodeMaxLen() int {
	return encodeMaxLen(h.Width, h.Height, h.Channels)
}

// EncodeMaxLen returns the buffer-size bound from §4.3 of the format
// specification for an image of the given dimensions and channel count:
// 14 + w*h*(channels+1) + 8. The bound depends only on the dimensions and
// channel count, not on pixel content; callers may size output buffers to
// exactly this value.
func EncodeMaxLen(width, height uint32, channels Channels) int {
	return encodeMaxLen(width, height, channels)
}

func encodeMaxLen(width, height uint32, channels Channels) int {
	n := int(width) * int(height)
	return headerSize + n*(int(channels)+1) + 8
}

func (h Header) encode() [headerSize]byte {
	var buf [headerSize]byte
	copy(buf[0:4], magicBytes[:])
	binary.BigEndian.PutUint32(buf[4:8], h.Width)
	binary.BigEndian.PutUint32(buf[8:12], h.Height)
	buf[12] = byte(h.Channels)
	buf[13] = byte(h.ColorSpace)
	return buf
}

// validateDims checks the width/height precondition shared by every
// Header-constructing path, before the channel count is even known.
func validateDims(width, height uint32) error {
	if width == 0 || height == 0 {
		return &EmptyImageError{}
	}
	if uint64(width)*uint64(height) > maxImagePixels {
		return &ImageTooLargeError{Width: width, Height: height}
	}
	return nil
}

// newHeader validates and constructs a Header, the shared precondition
// check used by both Encoder constructors.
func newHeader(width, height uint32, channels Channels, cs ColorSpace) (Header, error) {
	if err := validateDims(width, height); err != nil {
		return Header{}, err
	}
	if !channels.valid() {
		return Header{}, &InvalidChannelsError{Channels: int(channels)}
	}
	if !cs.valid() {
		return Header{}, &InvalidColorSpaceError{ColorSpace: int(cs)}
	}
	return Header{Width: width, Height: height, Channels: channels, ColorSpace: cs}, nil
}

// DecodeHeader parses and validates the 14-byte QOI header at the start of
// bytes. It does not read or validate any opcode or padding bytes.
func DecodeHeader(bytes []byte) (Header, error) {
	if len(bytes) < headerSize {
		return Header{}, &UnexpectedBufferEndError{}
	}
	var magic [4]byte
	copy(magic[:], bytes[0:4])
	if magic != magicBytes {
		return Header{}, &InvalidMagicError{Got: magic}
	}
	width := binary.BigEndian.Uint32(bytes[4:8])
	height := binary.BigEndian.Uint32(bytes[8:12])
	channels := Channels(bytes[12])
	cs := ColorSpace(bytes[13])

	if width == 0 || height == 0 {
		return Header{}, &ImageTooLargeError{Width: width, Height: height}
	}
	if uint64(width)*uint64(height) > maxImagePixels {
		return Header{}, &ImageTooLargeError{Width: width, Height: height}
	}
	if !channels.valid() {
		return Header{}, &InvalidChannelsError{Channels: int(channels)}
	}
	if !cs.valid() {
		return Header{}, &InvalidColorSpaceError{ColorSpace: int(cs)}
	}
	return Header{Width: width, Height: height, Channels: channels, ColorSpace: cs}, nil
}
