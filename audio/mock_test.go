// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

// genSource produces frames from a waveform function.
type genSource struct {
	rate, channels int
	frames, pos    int
	wave           func(frame, channel int) float32
	closed         bool
	failAfter      int // return errFake once pos reaches failAfter (0 = never)
}

var errFake = errors.New("fake source failure")

func newGenSource(rate, channels, frames int, wave func(frame, channel int) float32) *genSource {
	return &genSource{rate: rate, channels: channels, frames: frames, wave: wave}
}

func constant(v float32) func(int, int) float32 {
	return func(int, int) float32 { return v }
}

func sine(rate int, freq float64) func(int, int) float32 {
	return func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	}
}

func (g *genSource) SampleRate() int { return g.rate }
func (g *genSource) Channels() int   { return g.channels }
func (g *genSource) BufSize() int    { return 4096 }
func (g *genSource) Close() error    { g.closed = true; return nil }

func (g *genSource) ReadSamples(dst []float32) (int, error) {
	if g.failAfter > 0 && g.pos >= g.failAfter {
		return 0, errFake
	}
	if g.pos >= g.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/g.channels, g.frames-g.pos)
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.wave(g.pos+f, c)
		}
	}
	g.pos += n

	return n * g.channels, nil
}

type stubDecoder struct{ name string }

func (stubDecoder) Decode(io.Reader) (Source, error) {
	return newGenSource(44100, 2, 10, constant(0)), nil
}
