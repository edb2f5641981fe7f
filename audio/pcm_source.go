// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// PCMSource streams an in-memory interleaved float32 buffer.
type PCMSource struct {
	samples    []float32
	sampleRate int
	channels   int
	pos        int
}

// NewPCMSource wraps samples without copying them.
func NewPCMSource(samples []float32, sampleRate, channels int) (*PCMSource, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidLayout
	}

	return &PCMSource{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

func (s *PCMSource) SampleRate() int { return s.sampleRate }
func (s *PCMSource) Channels() int   { return s.channels }
func (s *PCMSource) BufSize() int    { return 4096 }
func (s *PCMSource) Close() error    { return nil }

func (s *PCMSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.samples) {
		return n, io.EOF
	}

	return n, nil
}

// ReadAll drains src into one interleaved buffer. io.EOF is not reported as an error.
func ReadAll(src Source) ([]float32, error) {
	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	// keep reads frame aligned
	if ch := src.Channels(); ch > 0 && bufSize%ch != 0 {
		bufSize += ch - bufSize%ch
	}

	buf := make([]float32, bufSize)
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// a source that makes no progress without reporting EOF is finished
			return out, nil
		}
	}
}
