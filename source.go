package qoi

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// byteSource is the minimal read side of the codec's I/O boundary,
// symmetric with byteSink: read one byte, read several, report remaining
// capacity (-1 for an unbounded stream). Exhaustion is reported as
// *UnexpectedBufferEndError for both a slice and a stream source; any other
// stream read failure is reported as *IoError.
type byteSource interface {
	readOne() (byte, error)
	readMany(n int) ([]byte, error)
	remaining() int
}

// bufSource reads from a caller-provided slice without copying on
// readMany (the returned slice aliases the input).
type bufSource struct {
	buf []byte
	pos int
}

func newBufSource(buf []byte) *bufSource {
	return &bufSource{buf: buf}
}

func (s *bufSource) remaining() int {
	return len(s.buf) - s.pos
}

func (s *bufSource) readOne() (byte, error) {
	if s.remaining() < 1 {
		return 0, &UnexpectedBufferEndError{}
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

func (s *bufSource) readMany(n int) ([]byte, error) {
	if s.remaining() < n {
		return nil, &UnexpectedBufferEndError{}
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

// streamSource adapts a generic io.Reader (buffered internally) to
// byteSource. Capacity is always reported as unbounded (-1).
type streamSource struct {
	r *bufio.Reader
}

func newStreamSource(r io.Reader) *streamSource {
	return &streamSource{r: bufio.NewReader(r)}
}

func (s *streamSource) remaining() int { return -1 }

func (s *streamSource) readOne() (byte, error) {
	b, err := s.r.ReadByte()
	if err == io.EOF {
		return 0, &UnexpectedBufferEndError{}
	}
	if err != nil {
		return 0, &IoError{Err: errors.Wrap(err, "qoi: stream read failed")}
	}
	return b, nil
}

func (s *streamSource) readMany(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(s.r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return nil, &UnexpectedBufferEndError{}
	}
	if err != nil {
		return nil, &IoError{Err: errors.Wrap(err, "qoi: stream read failed")}
	}
	return b, nil
}
