package qoi

import "fmt"

// InvalidMagicError is returned when a byte stream does not begin with the
// 4-byte QOI magic "qoif".
type InvalidMagicError struct {
	Got [4]byte
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("qoi: invalid magic bytes %q, want \"qoif\"", e.Got[:])
}

// InvalidChannelsError is returned when a header or inferred channel count
// is not 3 or 4.
type InvalidChannelsError struct {
	Channels int
}

func (e *InvalidChannelsError) Error() string {
	return fmt.Sprintf("qoi: invalid channel count %d, want 3 or 4", e.Channels)
}

// InvalidColorSpaceError is returned when a header colorspace byte is
// neither 0 (sRGB with linear alpha) nor 1 (all linear).
type InvalidColorSpaceError struct {
	ColorSpace int
}

func (e *InvalidColorSpaceError) Error() string {
	return fmt.Sprintf("qoi: invalid colorspace %d, want 0 or 1", e.ColorSpace)
}

// ImageTooLargeError is returned when width*height overflows the
// implementation's image-size cap, or when width or height is zero.
type ImageTooLargeError struct {
	Width, Height uint32
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("qoi: image %dx%d is empty or exceeds the size cap", e.Width, e.Height)
}

// InvalidImageLengthError is returned when the encoder's input slice does
// not match the declared width, height (and, for new_raw, stride/layout).
type InvalidImageLengthError struct {
	Size          int
	Width, Height uint32
}

func (e *InvalidImageLengthError) Error() string {
	return fmt.Sprintf("qoi: input length %d does not match %dx%d image", e.Size, e.Width, e.Height)
}

// InvalidStrideError is returned when a caller-supplied stride is smaller
// than one full row of pixels.
type InvalidStrideError struct {
	Stride int
}

func (e *InvalidStrideError) Error() string {
	return fmt.Sprintf("qoi: stride %d is smaller than one pixel row", e.Stride)
}

// OutputBufferTooSmallError is returned when a caller-provided output
// buffer cannot hold the worst-case encoded size.
type OutputBufferTooSmallError struct {
	Size, Required int
}

func (e *OutputBufferTooSmallError) Error() string {
	return fmt.Sprintf("qoi: output buffer has %d bytes, need at least %d", e.Size, e.Required)
}

// UnexpectedBufferEndError is returned when the decoder runs past the end
// of its input before reconstructing every pixel.
type UnexpectedBufferEndError struct{}

func (e *UnexpectedBufferEndError) Error() string {
	return "qoi: unexpected end of input"
}

// InvalidPaddingError is returned when the 8 bytes following the opcode
// stream are not the literal sequence 00 00 00 00 00 00 00 01.
type InvalidPaddingError struct {
	Got [8]byte
}

func (e *InvalidPaddingError) Error() string {
	return fmt.Sprintf("qoi: invalid end-of-stream padding %v", e.Got)
}

// EmptyImageError is returned when width or height is zero.
type EmptyImageError struct{}

func (e *EmptyImageError) Error() string {
	return "qoi: width and height must both be at least 1"
}

// IoError wraps a failure from a caller-supplied streaming writer or
// reader. The wrapped error is available via errors.Unwrap (so errors.Is
// and errors.As see through it); IoError has no Cause method, so
// errors.Cause stops at the IoError itself.
type IoError struct {
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("qoi: i/o error: %v", e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// maxImagePixels bounds width*height so that width*height*(channels+1) plus
// header and padding never overflows a platform int. 2^28 comfortably covers
// any image a single-pass in-memory codec is expected to handle while
// leaving headroom for the *5 worst-case per-pixel expansion below it.
const maxImagePixels = 1 << 28
