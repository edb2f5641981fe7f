// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/utils"
)

// go-mp3 always yields 16-bit little-endian stereo
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      int // bytes of an incomplete sample kept at the head of buf
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.carry])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.carry:])
	n += s.carry

	samples := utils.PCM16LEToFloat32(dst, s.buf[:n])
	s.carry = copy(s.buf, s.buf[2*samples:n])

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}
	if err == io.EOF && samples == 0 {
		return 0, io.EOF
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
