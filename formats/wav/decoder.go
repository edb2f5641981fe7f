// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sndcore/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// pcmReader is the part of gowav.Decoder the source needs, split out for tests.
type pcmReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}

	return 4096
}

// scale maps an integer sample of the given depth into [-1, 1).
func scale(v, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned
		return float32(v-128) / 128.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(v) / 2147483648.0
	default:
		return float32(v) / 32768.0
	}
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	for i := range n {
		dst[i] = scale(s.intBuf.Data[i], s.bitDepth)
	}

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("reading wav pcm: %w", err)
	}

	// go-audio reports the end of the data chunk as a short read
	if err == io.EOF || n < len(dst) {
		s.done = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, io.EOF
	}

	return n, nil
}

// Decoder decodes RIFF/WAVE integer PCM (8, 16, 24 or 32 bit).
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	if f := dec.WavAudioFormat; f != formatPCM && f != formatExtensible {
		return nil, ErrOnlyPCMSupported
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
