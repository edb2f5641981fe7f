// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides generated sources and assets plus a scripted
// backend for engine tests.
package audiotest

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/audio"
)

// MockSource generates frames from a waveform function.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	generated  int
	waveform   func(frame, channel int) float32
}

var _ audio.Source = (*MockSource)(nil)

func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	for frame := range n {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// Asset drains src into an asset, failing the test on error.
func Asset(tb testing.TB, name string, src audio.Source) *asset.Asset {
	tb.Helper()

	samples, err := audio.ReadAll(src)
	if err != nil {
		tb.Fatalf("reading %s: %v", name, err)
	}

	a, err := asset.New(name, samples, src.SampleRate(), src.Channels())
	if err != nil {
		tb.Fatalf("building %s: %v", name, err)
	}

	return a
}

// Tone is a mono sine asset.
func Tone(tb testing.TB, sampleRate, frames int, frequency float64) *asset.Asset {
	tb.Helper()
	return Asset(tb, "tone", NewSineSource(sampleRate, 1, frames, frequency))
}

// Silence is a mono asset of zeros.
func Silence(tb testing.TB, sampleRate, frames int) *asset.Asset {
	tb.Helper()
	return Asset(tb, "silence", NewSilentSource(sampleRate, 1, frames))
}
