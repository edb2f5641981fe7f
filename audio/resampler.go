// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/sndcore/utils"
)

// Resampler converts src to a target sample rate with Catmull-Rom
// interpolation. It works on interleaved frames and keeps the channel count.
// When the rates match it is a pass-through.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// hist[1] and hist[2] bracket the output position; hist[0] and hist[3]
	// are the outer spline points.
	hist  [4][]float32
	live  int // real (non padded) frames in hist[1..3]
	frac  float64
	ready bool

	in      []float32
	inPos   int
	inLen   int
	srcDone bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		in:       make([]float32, 1024*channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// nextFrame copies the next source frame into dst and reports whether one
// was available.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.inPos+r.channels > r.inLen {
		if r.srcDone {
			return false, nil
		}

		// keep a partial frame at the head of the buffer
		rest := copy(r.in, r.in[r.inPos:r.inLen])
		r.inPos, r.inLen = 0, rest

		n, err := r.src.ReadSamples(r.in[rest:])
		r.inLen += n

		if err == io.EOF || (err == nil && n == 0) {
			r.srcDone = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.hist[1])
	if err != nil || !ok {
		return err
	}
	copy(r.hist[0], r.hist[1])
	r.live = 1

	for i := 2; i < 4; i++ {
		ok, err := r.nextFrame(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
			continue
		}
		r.live++
	}

	return nil
}

// advance shifts the history window by one source frame.
func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:3], r.hist[1:])
	r.hist[3] = first

	ok, err := r.nextFrame(r.hist[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[3], r.hist[2])
		r.live--
	}

	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.src.SampleRate() == r.dstRate {
		return r.src.ReadSamples(dst)
	}

	if !r.ready {
		if err := r.prime(); err != nil {
			return 0, err
		}
		r.ready = true
	}

	written := 0
	for written < len(dst) {
		if r.live <= 0 {
			return written, io.EOF
		}

		x := float32(r.frac)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written += r.channels

		r.frac += r.step
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}
