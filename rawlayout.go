package qoi

import "fmt"

// RawChannels describes how a caller's in-memory pixel bytes are laid out:
// channel order, and whether a padding byte is present.
type RawChannels uint8

const (
	Rgb RawChannels = iota
	Bgr
	Rgba
	Argb
	Bgra
	Abgr
	Rgbx
	Xrgb
	Bgrx
	Xbgr
)

func (rc RawChannels) String() string {
	switch rc {
	case Rgb:
		return "Rgb"
	case Bgr:
		return "Bgr"
	case Rgba:
		return "Rgba"
	case Argb:
		return "Argb"
	case Bgra:
		return "Bgra"
	case Abgr:
		return "Abgr"
	case Rgbx:
		return "Rgbx"
	case Xrgb:
		return "Xrgb"
	case Bgrx:
		return "Bgrx"
	case Xbgr:
		return "Xbgr"
	default:
		return fmt.Sprintf("RawChannels(%d)", uint8(rc))
	}
}

// BytesPerPixel returns the number of source bytes each pixel occupies
// under this layout (3 for Rgb/Bgr, 4 for every other layout, padding byte
// included).
func (rc RawChannels) BytesPerPixel() int {
	switch rc {
	case Rgb, Bgr:
		return 3
	default:
		return 4
	}
}

// Channels returns the QOI channel count a stream encoded from this layout
// will declare in its header: 3 for layouts with no alpha channel (the
// plain and padded layouts), 4 for the alpha-bearing ones.
func (rc RawChannels) Channels() Channels {
	switch rc {
	case Rgba, Argb, Bgra, Abgr:
		return Rgba
	default:
		return Rgb
	}
}

// hasPadding reports whether this layout carries an unused byte (the
// x-variants) that is read-skipped on encode and written as 0xff on
// decode.
func (rc RawChannels) hasPadding() bool {
	switch rc {
	case Rgbx, Xrgb, Bgrx, Xbgr:
		return true
	default:
		return false
	}
}

// rawChannelsFromQOI returns the canonical layout (plain RGB or RGBA, no
// padding, no reordering) for a given QOI channel count — the layout a
// Decoder defaults to when the caller hasn't asked for channel coercion.
func rawChannelsFromQOI(c Channels) RawChannels {
	if c == Rgba {
		return Rgba
	}
	return Rgb
}

// pixelReader loads one source pixel starting at chunk[0] into a pixel,
// carrying forward prev's alpha for layouts with no alpha byte of their
// own. Encoder.encodeLoop selects one of these once per call (not once per
// pixel) so the hot per-pixel path contains no layout branching.
type pixelReader func(chunk []byte, prev pixel) pixel

// pixelWriter writes one decoded pixel into dst (length BytesPerPixel(rc)),
// filling the padding byte, if any, with 0xff.
type pixelWriter func(dst []byte, p pixel)

func readRgb(c []byte, prev pixel) pixel  { return pixel{r: c[0], g: c[1], b: c[2], a: prev.a} }
func readBgr(c []byte, prev pixel) pixel  { return pixel{r: c[2], g: c[1], b: c[0], a: prev.a} }
func readRgba(c []byte, _ pixel) pixel    { return pixel{r: c[0], g: c[1], b: c[2], a: c[3]} }
func readArgb(c []byte, _ pixel) pixel    { return pixel{r: c[1], g: c[2], b: c[3], a: c[0]} }
func readBgra(c []byte, _ pixel) pixel    { return pixel{r: c[2], g: c[1], b: c[0], a: c[3]} }
func readAbgr(c []byte, _ pixel) pixel    { return pixel{r: c[3], g: c[2], b: c[1], a: c[0]} }
func readRgbx(c []byte, prev pixel) pixel { return pixel{r: c[0], g: c[1], b: c[2], a: prev.a} }
func readXrgb(c []byte, prev pixel) pixel { return pixel{r: c[1], g: c[2], b: c[3], a: prev.a} }
func readBgrx(c []byte, prev pixel) pixel { return pixel{r: c[2], g: c[1], b: c[0], a: prev.a} }
func readXbgr(c []byte, prev pixel) pixel { return pixel{r: c[3], g: c[2], b: c[1], a: prev.a} }

func writeRgb(d []byte, p pixel)  { d[0], d[1], d[2] = p.r, p.g, p.b }
func writeBgr(d []byte, p pixel)  { d[0], d[1], d[2] = p.b, p.g, p.r }
func writeRgba(d []byte, p pixel) { d[0], d[1], d[2], d[3] = p.r, p.g, p.b, p.a }
func writeArgb(d []byte, p pixel) { d[0], d[1], d[2], d[3] = p.a, p.r, p.g, p.b }
func writeBgra(d []byte, p pixel) { d[0], d[1], d[2], d[3] = p.b, p.g, p.r, p.a }
func writeAbgr(d []byte, p pixel) { d[0], d[1], d[2], d[3] = p.a, p.b, p.g, p.r }
func writeRgbx(d []byte, p pixel) { d[0], d[1], d[2], d[3] = p.r, p.g, p.b, 0xff }
func writeXrgb(d []byte, p pixel) { d[0], d[1], d[2], d[3] = 0xff, p.r, p.g, p.b }
func writeBgrx(d []byte, p pixel) { d[0], d[1], d[2], d[3] = p.b, p.g, p.r, 0xff }
func writeXbgr(d []byte, p pixel) { d[0], d[1], d[2], d[3] = 0xff, p.b, p.g, p.r }

var pixelReaders = [...]pixelReader{
	Rgb: readRgb, Bgr: readBgr, Rgba: readRgba, Argb: readArgb, Bgra: readBgra,
	Abgr: readAbgr, Rgbx: readRgbx, Xrgb: readXrgb, Bgrx: readBgrx, Xbgr: readXbgr,
}

var pixelWriters = [...]pixelWriter{
	Rgb: writeRgb, Bgr: writeBgr, Rgba: writeRgba, Argb: writeArgb, Bgra: writeBgra,
	Abgr: writeAbgr, Rgbx: writeRgbx, Xrgb: writeXrgb, Bgrx: writeBgrx, Xbgr: writeXbgr,
}

// reader returns the zero-overhead pixel-read adapter for this layout.
func (rc RawChannels) reader() pixelReader {
	return pixelReaders[rc]
}

// writer returns the zero-overhead pixel-write adapter for this layout.
func (rc RawChannels) writer() pixelWriter {
	return pixelWriters[rc]
}
