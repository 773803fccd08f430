package qoi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRawLayoutRoundTrip reproduces the concrete 2x2-image layout laws from
// the format notes: encoding via NewRaw with layout L, then decoding in
// canonical channel order, must reproduce the permutation L specifies.
func TestRawLayoutRoundTrip(t *testing.T) {
	seq := func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i)
		}
		return b
	}

	cases := []struct {
		name   string
		data   []byte
		layout RawChannels
		want   []byte
	}{
		{"Bgr->Rgb", seq(12), Bgr, []byte{2, 1, 0, 5, 4, 3, 8, 7, 6, 11, 10, 9}},
		{"Bgra->Rgba", seq(16), Bgra, []byte{2, 1, 0, 3, 6, 5, 4, 7, 10, 9, 8, 11, 14, 13, 12, 15}},
		{"Abgr->Rgba", seq(16), Abgr, []byte{3, 2, 1, 0, 7, 6, 5, 4, 11, 10, 9, 8, 15, 14, 13, 12}},
		{"Rgbx->Rgb", seq(16), Rgbx, []byte{0, 1, 2, 4, 5, 6, 8, 9, 10, 12, 13, 14}},
		{"Xrgb->Rgb", seq(16), Xrgb, []byte{1, 2, 3, 5, 6, 7, 9, 10, 11, 13, 14, 15}},
		{"Bgrx->Rgb", seq(16), Bgrx, []byte{2, 1, 0, 6, 5, 4, 10, 9, 8, 14, 13, 12}},
		{"Xbgr->Rgb", seq(16), Xbgr, []byte{3, 2, 1, 7, 6, 5, 11, 10, 9, 15, 14, 13}},
		{"Rgba->Rgba", seq(16), Rgba, seq(16)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stride := 2 * c.layout.BytesPerPixel()
			enc, err := NewRaw(c.data, 2, 2, stride, c.layout)
			require.NoError(t, err)
			require.Equal(t, c.layout.Channels(), enc.Channels())

			out, err := enc.EncodeToVec()
			require.NoError(t, err)

			_, got, err := DecodeToVec(out)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestRawChannelsBytesPerPixel(t *testing.T) {
	require.Equal(t, 3, Rgb.BytesPerPixel())
	require.Equal(t, 3, Bgr.BytesPerPixel())
	for _, rc := range []RawChannels{Rgba, Argb, Bgra, Abgr, Rgbx, Xrgb, Bgrx, Xbgr} {
		require.Equal(t, 4, rc.BytesPerPixel())
	}
}

func TestRawChannelsQOIChannels(t *testing.T) {
	for _, rc := range []RawChannels{Rgb, Bgr, Rgbx, Xrgb, Bgrx, Xbgr} {
		require.Equal(t, Rgb, rc.Channels())
	}
	for _, rc := range []RawChannels{Rgba, Argb, Bgra, Abgr} {
		require.Equal(t, Rgba, rc.Channels())
	}
}
