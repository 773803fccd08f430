package qoi

import (
	"io"

	"github.com/pkg/errors"
)

// byteSink is the minimal write side of the codec's I/O boundary: write one
// byte, write several, and report how much capacity remains (or -1 when
// the sink is an unbounded stream). Two implementations exist: one over a
// caller-owned slice (bounds-checked, fails with OutputBufferTooSmallError)
// and one over a generic io.Writer (fails with IoError).
type byteSink interface {
	writeOne(b byte) error
	writeMany(b []byte) error
	remaining() int
}

// bufSink writes into a caller-provided slice without ever growing it.
type bufSink struct {
	buf []byte
	n   int
}

func newBufSink(buf []byte) *bufSink {
	return &bufSink{buf: buf}
}

func (s *bufSink) remaining() int {
	return len(s.buf) - s.n
}

func (s *bufSink) writeOne(b byte) error {
	if s.remaining() < 1 {
		return &OutputBufferTooSmallError{Size: len(s.buf), Required: s.n + 1}
	}
	s.buf[s.n] = b
	s.n++
	return nil
}

func (s *bufSink) writeMany(b []byte) error {
	if s.remaining() < len(b) {
		return &OutputBufferTooSmallError{Size: len(s.buf), Required: s.n + len(b)}
	}
	copy(s.buf[s.n:], b)
	s.n += len(b)
	return nil
}

// streamSink adapts a generic io.Writer to byteSink. Capacity is always
// reported as unbounded (-1); failures surface as *IoError.
type streamSink struct {
	w io.Writer
	n int
}

func newStreamSink(w io.Writer) *streamSink {
	return &streamSink{w: w}
}

func (s *streamSink) remaining() int { return -1 }

func (s *streamSink) writeOne(b byte) error {
	return s.writeMany([]byte{b})
}

func (s *streamSink) writeMany(b []byte) error {
	n, err := s.w.Write(b)
	s.n += n
	if err != nil {
		return &IoError{Err: errors.Wrap(err, "qoi: stream write failed")}
	}
	if n != len(b) {
		return &IoError{Err: errors.Errorf("qoi: short write: wrote %d of %d bytes", n, len(b))}
	}
	return nil
}
