// SPDX-License-Identifier: EPL-2.0

package asset

import "github.com/ik5/sndcore/utils"

// SoundBuffer is raw PCM handed over by collaborators such as voice codecs.
// 8-bit data is unsigned, 16-bit data is signed little-endian, stereo is
// interleaved.
type SoundBuffer struct {
	Data       []byte
	Frequency  int
	SixteenBit bool
	Stereo     bool
}

func (b SoundBuffer) Channels() int {
	if b.Stereo {
		return 2
	}

	return 1
}

// FrameSize is the number of bytes in one sample frame.
func (b SoundBuffer) FrameSize() int {
	size := b.Channels()
	if b.SixteenBit {
		size *= 2
	}

	return size
}

// Frames is the number of whole sample frames in Data.
func (b SoundBuffer) Frames() int {
	return len(b.Data) / b.FrameSize()
}

// FromSoundBuffer converts raw PCM into an Asset named "buffer".
func FromSoundBuffer(buf SoundBuffer) (*Asset, error) {
	if buf.Frequency <= 0 {
		return nil, ErrInvalidLayout
	}

	frames := buf.Frames()
	if frames == 0 {
		return nil, ErrEmptyBuffer
	}

	samples := make([]float32, frames*buf.Channels())
	data := buf.Data[:frames*buf.FrameSize()]

	if buf.SixteenBit {
		utils.PCM16LEToFloat32(samples, data)
	} else {
		utils.PCM8ToFloat32(samples, data)
	}

	return New("buffer", samples, buf.Frequency, buf.Channels())
}
