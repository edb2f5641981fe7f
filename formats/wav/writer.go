// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// WriteWAV16 writes interleaved 16-bit PCM as a WAV file. The encoder
// patches chunk sizes on Close, so w must be seekable.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return ErrInvalidChannels
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	const chunk = 8192
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 0, min(len(samples), chunk)),
		SourceBitDepth: 16,
	}

	// at least one Write so the header exists even for empty input
	start := 0
	for {
		end := min(start+chunk, len(samples))
		buf.Data = buf.Data[:0]
		for _, s := range samples[start:end] {
			buf.Data = append(buf.Data, int(s))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav samples: %w", err)
		}

		start = end
		if start >= len(samples) {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// Encode16 renders a complete WAV file in memory.
func Encode16(sampleRate, channels int, samples []int16) ([]byte, error) {
	var f memFile
	if err := WriteWAV16(&f, sampleRate, channels, samples); err != nil {
		return nil, err
	}

	return f.data, nil
}

// memFile is an in-memory io.WriteSeeker.
type memFile struct {
	data []byte
	pos  int
}

func (m *memFile) Write(p []byte) (int, error) {
	if end := m.pos + len(p); end > len(m.data) {
		m.data = append(m.data, make([]byte, end-len(m.data))...)
	}
	n := copy(m.data[m.pos:], p)
	m.pos += n

	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(m.pos) + offset
	case io.SeekEnd:
		pos = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if pos < 0 {
		return 0, errors.New("negative position")
	}
	m.pos = int(pos)

	return pos, nil
}
