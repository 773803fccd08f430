package qoi

// pixel is a 4-channel RGBA sample. In 3-channel images A is pinned to
// 0xff for every pixel the caller reads in, but the index table and the
// running previous-pixel state always operate on this 4-channel view.
type pixel struct {
	r, g, b, a uint8
}

// hash implements the QOI index-table hash: (r*3 + g*5 + b*7 + a*11) mod 64.
// All arithmetic is mod-256 uint8 arithmetic until the final %64.
func (p pixel) hash() uint8 {
	return (p.r*3 + p.g*5 + p.b*7 + p.a*11) % 64
}

func (p pixel) equals(o pixel) bool {
	return p == o
}

// indexTable is the 64-slot recently-seen pixel cache. Every slot starts at
// {0,0,0,0} — alpha zero, not 0xff. This asymmetry with the initial
// previous-pixel value ({0,0,0,255}) is part of the wire format and must
// never be "corrected".
type indexTable [64]pixel
