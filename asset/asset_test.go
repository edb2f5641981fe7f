// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/formats"
	"github.com/ik5/sndcore/formats/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stereoWAV(t *testing.T, rate, frames int) []byte {
	t.Helper()

	samples := make([]int16, 2*frames)
	for i := range frames {
		samples[2*i] = 16384
		samples[2*i+1] = -16384
	}

	data, err := wav.Encode16(rate, 2, samples)
	require.NoError(t, err)
	return data
}

func TestNew(t *testing.T) {
	a, err := New("x", []float32{0.1, 0.2, 0.3}, 8000, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Frames(), "partial trailing frame dropped")
	assert.Len(t, a.Samples(), 2)

	_, err = New("x", nil, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestValid(t *testing.T) {
	var nilAsset *Asset
	assert.False(t, nilAsset.Valid())
	assert.Zero(t, nilAsset.Frames())
	assert.Zero(t, nilAsset.Duration())

	empty, err := New("empty", nil, 8000, 1)
	require.NoError(t, err)
	assert.False(t, empty.Valid())

	a, err := New("one", []float32{0}, 8000, 1)
	require.NoError(t, err)
	assert.True(t, a.Valid())
}

func TestDecode_Native(t *testing.T) {
	a, err := Decode("door.wav", bytes.NewReader(stereoWAV(t, 22050, 2205)), wav.Decoder{}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "door.wav", a.Name())
	assert.Equal(t, 22050, a.SampleRate())
	assert.Equal(t, 2, a.Channels())
	assert.Equal(t, 2205, a.Frames())
	assert.Equal(t, 100*time.Millisecond, a.Duration())
	assert.InDelta(t, 0.5, a.Samples()[0], 1e-6)
}

func TestDecode_MonoResampled(t *testing.T) {
	a, err := Decode("door.wav", bytes.NewReader(stereoWAV(t, 22050, 2205)), wav.Decoder{},
		Options{SampleRate: 44100, Mono: true})
	require.NoError(t, err)

	assert.Equal(t, 44100, a.SampleRate())
	assert.Equal(t, 1, a.Channels())
	assert.InDelta(t, 4410, a.Frames(), 3)
	for _, s := range a.Samples() {
		require.InDelta(t, 0, s, 1e-5, "opposite channels cancel in the downmix")
	}
}

func TestDecode_Error(t *testing.T) {
	_, err := Decode("junk.wav", bytes.NewReader([]byte("junk")), wav.Decoder{}, Options{})
	assert.ErrorIs(t, err, wav.ErrNotWavFile)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chime.WAV")
	require.NoError(t, os.WriteFile(path, stereoWAV(t, 8000, 800), 0o644))

	a, err := LoadFile(path, formats.DefaultRegistry(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "chime.WAV", a.Name())
	assert.Equal(t, 800, a.Frames())

	_, err = LoadFile(filepath.Join(dir, "chime.flac"), formats.DefaultRegistry(), Options{})
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.wav"), formats.DefaultRegistry(), Options{})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMono(t *testing.T) {
	a, err := New("s", []float32{1, 0, 0.5, 0.5}, 8000, 2)
	require.NoError(t, err)

	m, err := a.Mono()
	require.NoError(t, err)
	assert.Equal(t, 1, m.Channels())
	assert.Equal(t, []float32{0.5, 0.5}, m.Samples())

	same, err := m.Mono()
	require.NoError(t, err)
	assert.Same(t, m, same)
}

func TestSource(t *testing.T) {
	a, err := New("s", []float32{0.25, 0.5}, 8000, 1)
	require.NoError(t, err)

	got, err := audio.ReadAll(a.Source())
	require.NoError(t, err)
	assert.Equal(t, a.Samples(), got)
}

func TestFromSoundBuffer(t *testing.T) {
	pcm := make([]byte, 8)
	for i, v := range []int16{16384, -16384, 0, 8192} {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(v))
	}

	tests := []struct {
		name     string
		buf      SoundBuffer
		channels int
		want     []float32
	}{
		{"16-bit mono", SoundBuffer{Data: pcm, Frequency: 8000, SixteenBit: true}, 1, []float32{0.5, -0.5, 0, 0.25}},
		{"16-bit stereo", SoundBuffer{Data: pcm, Frequency: 8000, SixteenBit: true, Stereo: true}, 2, []float32{0.5, -0.5, 0, 0.25}},
		{"8-bit mono", SoundBuffer{Data: []byte{128, 0, 192}, Frequency: 11025}, 1, []float32{0, -1, 0.5}},
		{"8-bit stereo drops odd byte", SoundBuffer{Data: []byte{128, 0, 192}, Frequency: 11025, Stereo: true}, 2, []float32{0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := FromSoundBuffer(tt.buf)
			require.NoError(t, err)
			assert.True(t, a.Valid())
			assert.Equal(t, "buffer", a.Name())
			assert.Equal(t, tt.channels, a.Channels())
			assert.Equal(t, tt.buf.Frequency, a.SampleRate())
			assert.Equal(t, tt.want, a.Samples())
		})
	}
}

func TestFromSoundBuffer_Invalid(t *testing.T) {
	_, err := FromSoundBuffer(SoundBuffer{Data: []byte{1}, Frequency: 8000, SixteenBit: true})
	assert.ErrorIs(t, err, ErrEmptyBuffer)

	_, err = FromSoundBuffer(SoundBuffer{Data: []byte{1, 2}, Frequency: 0})
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestSoundBuffer_Sizes(t *testing.T) {
	b := SoundBuffer{Data: make([]byte, 100), SixteenBit: true, Stereo: true}
	assert.Equal(t, 4, b.FrameSize())
	assert.Equal(t, 25, b.Frames())
	assert.Equal(t, 2, b.Channels())
}
