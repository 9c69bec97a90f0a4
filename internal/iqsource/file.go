// Package iqsource provides concrete producers of the complex128 stream
// gravesdet.Detector.Feed/FeedBatch consumes: a raw file/stdin reader for
// offline analysis, and a sound-card reader for live monitoring.
package iqsource

import (
	"encoding/binary"
	"io"
	"math"
)

// FileSource reads interleaved 32-bit float I/Q pairs (little-endian) from
// an io.Reader — the simplest contract a recording or a piped SDR tool can
// satisfy.
type FileSource struct {
	r   io.Reader
	buf [8]byte
}

// NewFileSource wraps r; r is read exactly as the stream progresses, so
// stdin or a plain *os.File both work unmodified.
func NewFileSource(r io.Reader) *FileSource {
	return &FileSource{r: r}
}

// Next reads one interleaved (I, Q) float32 pair and returns it as a
// complex128 sample. Returns io.EOF when the underlying reader is
// exhausted exactly on a sample boundary; a partial trailing pair is
// reported as io.ErrUnexpectedEOF.
func (s *FileSource) Next() (complex128, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}

	var i = math.Float32frombits(binary.LittleEndian.Uint32(s.buf[0:4]))
	var q = math.Float32frombits(binary.LittleEndian.Uint32(s.buf[4:8]))

	return complex(float64(i), float64(q)), nil
}

// ReadBatch fills dst with up to len(dst) samples, returning the count
// actually read and, if the source ran dry, io.EOF alongside any samples
// that were read before it did.
func (s *FileSource) ReadBatch(dst []complex128) (int, error) {
	for i := range dst {
		var sample, err = s.Next()
		if err != nil {
			return i, err
		}
		dst[i] = sample
	}
	return len(dst), nil
}
