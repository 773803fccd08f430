package qoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{Width: 800, Height: 600, Channels: Rgba, ColorSpace: AllLinear}
	enc := h.encode()
	require.Len(t, enc, headerSize)

	got, err := DecodeHeader(enc[:])
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestDecodeHeaderInvalidMagic(t *testing.T) {
	buf := make([]byte, headerSize)
	copy(buf, "xoif")
	_, err := DecodeHeader(buf)
	require.Error(t, err)
	var magicErr *InvalidMagicError
	require.ErrorAs(t, err, &magicErr)
}

func TestDecodeHeaderTooShort(t *testing.T) {
	_, err := DecodeHeader(make([]byte, 13))
	require.Error(t, err)
	var endErr *UnexpectedBufferEndError
	require.ErrorAs(t, err, &endErr)
}

func TestDecodeHeaderInvalidChannels(t *testing.T) {
	h := Header{Width: 1, Height: 1, Channels: 5, ColorSpace: SRGBLinearAlpha}
	enc := h.encode()
	_, err := DecodeHeader(enc[:])
	var chErr *InvalidChannelsError
	require.ErrorAs(t, err, &chErr)
	require.Equal(t, 5, chErr.Channels)
}

func TestDecodeHeaderInvalidColorSpace(t *testing.T) {
	buf := [headerSize]byte{'q', 'o', 'i', 'f', 0, 0, 0, 1, 0, 0, 0, 1, 3, 7}
	_, err := DecodeHeader(buf[:])
	var csErr *InvalidColorSpaceError
	require.ErrorAs(t, err, &csErr)
	require.Equal(t, 7, csErr.ColorSpace)
}

func TestDecodeHeaderZeroDims(t *testing.T) {
	buf := [headerSize]byte{'q', 'o', 'i', 'f', 0, 0, 0, 0, 0, 0, 0, 1, 3, 0}
	_, err := DecodeHeader(buf[:])
	var bigErr *ImageTooLargeError
	require.ErrorAs(t, err, &bigErr)
}

func TestEncodeMaxLen(t *testing.T) {
	require.Equal(t, 14+4*5+8, EncodeMaxLen(2, 2, Rgba))
	require.Equal(t, 14+4*4+8, EncodeMaxLen(2, 2, Rgb))
}
