package qoi

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/pkg/errors"
)

// ImageDecodeConfig reads just enough of r (its 14-byte header) to report
// the image's dimensions and color model, without decoding any pixels.
// It satisfies the signature expected by image.RegisterFormat.
func ImageDecodeConfig(r io.Reader) (image.Config, error) {
	header, err := DecodeHeaderFromStream(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(header.Width),
		Height:     int(header.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// ImageDecode reads a full QOI stream from r and returns it as an
// *image.NRGBA. It satisfies the signature expected by image.RegisterFormat.
func ImageDecode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "qoi: reading stream")
	}
	header, pix, err := NewDecoder(data).WithChannels(Rgba).DecodeToVec()
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{
		Pix:    pix,
		Stride: int(header.Width) * 4,
		Rect:   image.Rect(0, 0, int(header.Width), int(header.Height)),
	}, nil
}

// ImageEncode encodes m as QOI and writes it to w.
func ImageEncode(w io.Writer, m image.Image) error {
	nrgba := toNRGBA(m)
	enc, err := NewRaw(nrgba.Pix, uint32(nrgba.Rect.Dx()), uint32(nrgba.Rect.Dy()), nrgba.Stride, Rgba)
	if err != nil {
		return err
	}
	_, err = enc.EncodeToStream(w)
	return err
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}
