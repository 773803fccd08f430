package qoi

import "io"

const (
	opRun8  = 0b11_000000
	opRgb8  = 0b11111110
	opRgba8 = 0b11111111
	opIndex = 0b00_000000
	opDiff  = 0b01_000000
	opLuma  = 0b10_000000
)

var paddingBytes = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Encoder turns raw pixel bytes into a QOI byte stream. An Encoder is
// constructed fresh for each image and holds no state beyond its inputs;
// two Encoders may run concurrently on separate goroutines without
// coordination.
type Encoder struct {
	data        []byte
	stride      int
	rawChannels RawChannels
	header      Header
	reference   bool
}

// New creates an encoder from tightly-packed RGB or RGBA pixel data (no
// row padding). The channel count is inferred as len(data)/(width*height);
// the result must be exactly 3 or 4, and the inferred count must consume
// data exactly, or New fails with InvalidChannelsError / InvalidImageLengthError.
func New(data []byte, width, height uint32) (*Encoder, error) {
	if err := validateDims(width, height); err != nil {
		return nil, err
	}
	nPixels := int(width) * int(height)
	size := len(data)
	nChannels := size / nPixels
	if nPixels*nChannels != size {
		return nil, &InvalidImageLengthError{Size: size, Width: width, Height: height}
	}
	if nChannels != int(Rgb) && nChannels != int(Rgba) {
		return nil, &InvalidChannelsError{Channels: nChannels}
	}
	channels := Channels(nChannels)
	header, err := newHeader(width, height, channels, SRGBLinearAlpha)
	if err != nil {
		return nil, err
	}
	rawChannels := rawChannelsFromQOI(channels)
	return &Encoder{
		data:        data,
		stride:      width2stride(width, rawChannels),
		rawChannels: rawChannels,
		header:      header,
	}, nil
}

// NewRaw creates an encoder from pixel data in one of the ten recognized
// raw layouts, with an explicit row stride. stride must be at least
// width*rawChannels.BytesPerPixel(); data must be at least long enough to
// cover every pixel of every row (trailing bytes beyond that are ignored).
func NewRaw(data []byte, width, height uint32, stride int, rawChannels RawChannels) (*Encoder, error) {
	channels := rawChannels.Channels()
	header, err := newHeader(width, height, channels, SRGBLinearAlpha)
	if err != nil {
		return nil, err
	}
	bpp := rawChannels.BytesPerPixel()
	minStride := int(width) * bpp
	if stride < minStride {
		return nil, &InvalidStrideError{Stride: stride}
	}
	// height >= 1 here (newHeader already rejected height == 0). Data
	// longer than this is legal; trailing bytes are simply ignored.
	required := stride*(int(height)-1) + minStride
	if required > len(data) {
		return nil, &InvalidImageLengthError{Size: len(data), Width: width, Height: height}
	}
	return &Encoder{
		data:        data,
		stride:      stride,
		rawChannels: rawChannels,
		header:      header,
	}, nil
}

func width2stride(width uint32, rc RawChannels) int {
	return int(width) * rc.BytesPerPixel()
}

// WithColorSpace returns the encoder with its header colorspace byte set.
// This is purely informational: it never changes the emitted opcodes.
func (e *Encoder) WithColorSpace(cs ColorSpace) *Encoder {
	e.header.ColorSpace = cs
	return e
}

// WithReferenceMode toggles reference mode: when true, run-of-one is
// always emitted as OP_RUN, matching the canonical upstream encoder
// byte-for-byte. When false (the default), a run of exactly one pixel is
// emitted as OP_INDEX whenever that's legal, which is the same size (one
// byte) as OP_RUN but diverges from the reference encoder's exact byte output
// (both are valid QOI streams; see §4.3/§9 of the format notes).
func (e *Encoder) WithReferenceMode(reference bool) *Encoder {
	e.reference = reference
	return e
}

// Channels returns the QOI channel count this encoder will declare.
func (e *Encoder) Channels() Channels {
	return e.header.Channels
}

// Header returns the header that will be written by this encoder.
func (e *Encoder) Header() Header {
	return e.header
}

// RequiredBufLen returns the maximum number of bytes EncodeToBuf will ever
// write for this encoder's image.
func (e *Encoder) RequiredBufLen() int {
	return e.header.EncodeMaxLen()
}

// EncodeToBuf encodes into a pre-allocated buffer and returns the number of
// bytes written. buf must be at least RequiredBufLen() long.
func (e *Encoder) EncodeToBuf(buf []byte) (int, error) {
	required := e.RequiredBufLen()
	if len(buf) < required {
		return 0, &OutputBufferTooSmallError{Size: len(buf), Required: required}
	}
	head := e.header.encode()
	copy(buf, head[:])
	sink := newBufSink(buf[headerSize:])
	counts, err := e.encodeLoop(sink)
	if err != nil {
		return 0, err
	}
	counts.logEvent("encode", e.header)
	return headerSize + sink.n, nil
}

// EncodeToVec encodes into a newly allocated slice sized exactly to the
// bytes written.
func (e *Encoder) EncodeToVec() ([]byte, error) {
	out := make([]byte, e.RequiredBufLen())
	n, err := e.EncodeToBuf(out)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// EncodeToStream encodes directly to a generic io.Writer, returning the
// number of bytes written. I/O failures are reported as *IoError.
func (e *Encoder) EncodeToStream(w io.Writer) (int, error) {
	head := e.header.encode()
	if _, err := w.Write(head[:]); err != nil {
		return 0, &IoError{Err: err}
	}
	sink := newStreamSink(w)
	counts, err := e.encodeLoop(sink)
	if err != nil {
		return 0, err
	}
	counts.logEvent("encode", e.header)
	return headerSize + sink.n, nil
}

// encodeLoop runs the per-pixel state machine described in §4.3 of the
// format notes over e.data and writes opcodes to sink.
func (e *Encoder) encodeLoop(sink byteSink) (opcodeCounts, error) {
	var counts opcodeCounts
	width, height := int(e.header.Width), int(e.header.Height)
	bpp := e.rawChannels.BytesPerPixel()
	read := e.rawChannels.reader()
	rowBytes := width * bpp
	qoiChannels := e.header.Channels

	var table indexTable
	prev := pixel{r: 0, g: 0, b: 0, a: 255}
	hashPrev := prev.hash()
	run := 0
	indexAllowed := false
	nPixels := width * height
	i := 0

	data := e.data
	for row := 0; row < height; row++ {
		rowStart := row * e.stride
		if rowStart+rowBytes > len(data) {
			return counts, &InvalidImageLengthError{Size: len(data), Width: e.header.Width, Height: e.header.Height}
		}
		pixelRow := data[rowStart : rowStart+rowBytes]
		for off := 0; off < rowBytes; off += bpp {
			px := read(pixelRow[off:off+bpp], prev)

			if px == prev {
				run++
				if run == 62 || i == nPixels-1 {
					if err := sink.writeOne(opRun8 | byte(run-1)); err != nil {
						return counts, err
					}
					counts.run++
					run = 0
				}
				i++
				continue
			}

			if run != 0 {
				if !e.reference && run == 1 && indexAllowed {
					if err := sink.writeOne(opIndex | hashPrev); err != nil {
						return counts, err
					}
					counts.index++
				} else {
					if err := sink.writeOne(opRun8 | byte(run-1)); err != nil {
						return counts, err
					}
					counts.run++
				}
				run = 0
			}

			indexAllowed = true
			hashPrev = px.hash()
			slot := &table[hashPrev]
			if *slot == px {
				if err := sink.writeOne(opIndex | hashPrev); err != nil {
					return counts, err
				}
				counts.index++
			} else {
				*slot = px
				if err := e.emitPixel(sink, px, prev, qoiChannels, &counts); err != nil {
					return counts, err
				}
			}
			prev = px
			i++
		}
	}

	if err := sink.writeMany(paddingBytes[:]); err != nil {
		return counts, err
	}
	return counts, nil
}

// emitPixel selects and writes the best single-pixel opcode for px given
// the running previous pixel, per §4.5.
func (e *Encoder) emitPixel(sink byteSink, px, prev pixel, channels Channels, counts *opcodeCounts) error {
	dr := delta(prev.r, px.r)
	dg := delta(prev.g, px.g)
	db := delta(prev.b, px.b)
	da := delta(prev.a, px.a)

	if channels == Rgba && da != 0 {
		counts.rgba++
		return sink.writeMany([]byte{opRgba8, px.r, px.g, px.b, px.a})
	}

	if inRange(dr, -2, 1) && inRange(dg, -2, 1) && inRange(db, -2, 1) {
		b := byte(opDiff | (dr+2)<<4 | (dg+2)<<2 | (db + 2))
		counts.diff++
		return sink.writeOne(b)
	}

	drdg := dr - dg
	dbdg := db - dg
	if inRange(dg, -32, 31) && inRange(drdg, -8, 7) && inRange(dbdg, -8, 7) {
		b0 := byte(opLuma | (dg + 32))
		b1 := byte((drdg+8)<<4 | (dbdg + 8))
		counts.luma++
		return sink.writeMany([]byte{b0, b1})
	}

	if channels == Rgba {
		counts.rgba++
		return sink.writeMany([]byte{opRgba8, px.r, px.g, px.b, px.a})
	}
	counts.rgb++
	return sink.writeMany([]byte{opRgb8, px.r, px.g, px.b})
}

// delta returns to-from as a signed two's-complement difference, mod 256.
func delta(from, to uint8) int {
	return int(int8(to - from))
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

// EncodeToBuf infers channels from data and encodes into buf, returning
// the number of bytes written.
func EncodeToBuf(data []byte, width, height uint32, buf []byte) (int, error) {
	enc, err := New(data, width, height)
	if err != nil {
		return 0, err
	}
	return enc.EncodeToBuf(buf)
}

// EncodeToVec infers channels from data and encodes into a freshly
// allocated slice.
func EncodeToVec(data []byte, width, height uint32) ([]byte, error) {
	enc, err := New(data, width, height)
	if err != nil {
		return nil, err
	}
	return enc.EncodeToVec()
}
