package qoi

import "io"

// Decoder turns a QOI byte stream back into raw pixel bytes. A Decoder is
// constructed fresh for each image and holds no state beyond its inputs.
type Decoder struct {
	data        []byte
	outChannels Channels // 0 means "use the stream's own channel count"
}

// NewDecoder creates a decoder over a QOI byte stream. By default the
// output channel count matches the stream's header; call WithChannels to
// coerce it.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// WithChannels requests that decoded output be coerced to the given
// channel count: dropping alpha (4->3) or adding a constant 0xff alpha
// (3->4), regardless of what the stream itself declares.
func (d *Decoder) WithChannels(c Channels) *Decoder {
	d.outChannels = c
	return d
}

// Header parses and validates the stream's header without decoding any
// pixel data.
func (d *Decoder) Header() (Header, error) {
	return DecodeHeader(d.data)
}

// outputChannels resolves the channel count to decode into: the caller's
// override if set, else the stream's own declared channel count.
func (d *Decoder) outputChannels(header Header) Channels {
	if d.outChannels != 0 {
		return d.outChannels
	}
	return header.Channels
}

// DecodeToBuf decodes into a pre-allocated buffer and returns the parsed
// header. out must be exactly header.Width*header.Height*outputChannels
// bytes long (see Header.NPixels and the returned header's Channels if
// WithChannels was not called).
func (d *Decoder) DecodeToBuf(out []byte) (Header, error) {
	header, err := DecodeHeader(d.data)
	if err != nil {
		return Header{}, err
	}
	outChannels := d.outputChannels(header)
	required := header.NPixels() * int(outChannels)
	if len(out) != required {
		return Header{}, &InvalidImageLengthError{Size: len(out), Width: header.Width, Height: header.Height}
	}
	source := newBufSource(d.data[headerSize:])
	counts, err := decodeLoop(header, outChannels, source, out)
	if err != nil {
		return Header{}, err
	}
	counts.logEvent("decode", header)
	return header, nil
}

// DecodeToVec decodes into a freshly allocated slice and returns the
// parsed header alongside it.
func (d *Decoder) DecodeToVec() (Header, []byte, error) {
	header, err := DecodeHeader(d.data)
	if err != nil {
		return Header{}, nil, err
	}
	outChannels := d.outputChannels(header)
	out := make([]byte, header.NPixels()*int(outChannels))
	if _, err := d.DecodeToBuf(out); err != nil {
		return Header{}, nil, err
	}
	return header, out, nil
}

// decodeLoop runs the decoder state machine of §4.6 of the format notes,
// reading opcodes from source and writing outputChannels-wide pixels into
// out.
func decodeLoop(header Header, outChannels Channels, source byteSource, out []byte) (opcodeCounts, error) {
	var counts opcodeCounts
	write := rawChannelsFromQOI(outChannels).writer()
	bpp := int(outChannels)
	nPixels := header.NPixels()

	var table indexTable
	prev := pixel{r: 0, g: 0, b: 0, a: 255}
	run := 0

	for pixelsWritten := 0; pixelsWritten < nPixels; {
		if run > 0 {
			write(out[pixelsWritten*bpp:pixelsWritten*bpp+bpp], prev)
			run--
			pixelsWritten++
			continue
		}

		tag, err := source.readOne()
		if err != nil {
			return counts, err
		}

		switch {
		case tag == opRgba8:
			b, err := source.readMany(4)
			if err != nil {
				return counts, err
			}
			prev = pixel{r: b[0], g: b[1], b: b[2], a: b[3]}
			table[prev.hash()] = prev
			counts.rgba++

		case tag == opRgb8:
			b, err := source.readMany(3)
			if err != nil {
				return counts, err
			}
			prev = pixel{r: b[0], g: b[1], b: b[2], a: prev.a}
			table[prev.hash()] = prev
			counts.rgb++

		case tag>>6 == 0: // OP_INDEX
			prev = table[tag]
			counts.index++

		case tag>>6 == 1: // OP_DIFF
			dr := int(tag>>4&0x3) - 2
			dg := int(tag>>2&0x3) - 2
			db := int(tag&0x3) - 2
			prev = pixel{
				r: byte(int(prev.r) + dr),
				g: byte(int(prev.g) + dg),
				b: byte(int(prev.b) + db),
				a: prev.a,
			}
			table[prev.hash()] = prev
			counts.diff++

		case tag>>6 == 2: // OP_LUMA
			rb, err := source.readOne()
			if err != nil {
				return counts, err
			}
			dg := int(tag&0x3F) - 32
			dr := dg + int(rb>>4&0xF) - 8
			db := dg + int(rb&0xF) - 8
			prev = pixel{
				r: byte(int(prev.r) + dr),
				g: byte(int(prev.g) + dg),
				b: byte(int(prev.b) + db),
				a: prev.a,
			}
			table[prev.hash()] = prev
			counts.luma++

		default: // tag>>6 == 3, OP_RUN (low6 is never 62 or 63: those tags
			// are 0xFE/0xFF and already matched above)
			run = int(tag & 0x3F)
			counts.run++
		}

		write(out[pixelsWritten*bpp:pixelsWritten*bpp+bpp], prev)
		pixelsWritten++
	}

	padding, err := source.readMany(8)
	if err != nil {
		return counts, err
	}
	var got [8]byte
	copy(got[:], padding)
	if got != paddingBytes {
		return counts, &InvalidPaddingError{Got: got}
	}
	return counts, nil
}

// DecodeHeaderFromStream reads exactly the 14-byte header from r. Useful
// to recover image dimensions without buffering the whole stream (e.g.
// implementing image.DecodeConfig).
func DecodeHeaderFromStream(r io.Reader) (Header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, &IoError{Err: err}
	}
	return DecodeHeader(buf[:])
}

// DecodeFromStream decodes a full QOI stream read incrementally from r,
// the streaming counterpart to Encoder.EncodeToStream: it never requires
// the whole input to be buffered by the caller first.
func DecodeFromStream(r io.Reader, outChannels Channels) (Header, []byte, error) {
	header, err := DecodeHeaderFromStream(r)
	if err != nil {
		return Header{}, nil, err
	}
	if outChannels == 0 {
		outChannels = header.Channels
	}
	out := make([]byte, header.NPixels()*int(outChannels))
	source := newStreamSource(r)
	counts, err := decodeLoop(header, outChannels, source, out)
	if err != nil {
		return Header{}, nil, err
	}
	counts.logEvent("decode", header)
	return header, out, nil
}

// DecodeToBuf parses bytes' header and decodes into out, which must be
// exactly header.Width*header.Height*header.Channels long.
func DecodeToBuf(bytes []byte, out []byte) (Header, error) {
	return NewDecoder(bytes).DecodeToBuf(out)
}

// DecodeToVec parses bytes' header and decodes into a freshly allocated
// slice.
func DecodeToVec(bytes []byte) (Header, []byte, error) {
	return NewDecoder(bytes).DecodeToVec()
}
