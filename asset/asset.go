// SPDX-License-Identifier: EPL-2.0

// Package asset holds decoded audio payloads shared between the engine and
// its callers. An Asset is immutable once built, so one instance can feed
// any number of channels at the same time.
package asset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/sndcore/audio"
)

// Asset is decoded interleaved float32 PCM.
type Asset struct {
	name       string
	samples    []float32
	sampleRate int
	channels   int
}

// Options shape the PCM produced by Decode and LoadFile.
type Options struct {
	// SampleRate resamples to this rate; 0 keeps the native rate.
	SampleRate int
	// Mono downmixes multi-channel audio.
	Mono bool
}

// New wraps already decoded samples. samples is not copied.
func New(name string, samples []float32, sampleRate, channels int) (*Asset, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidLayout
	}

	// drop a trailing partial frame
	samples = samples[:len(samples)-len(samples)%channels]

	return &Asset{
		name:       name,
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

// Decode reads a whole stream through dec and applies opts.
func Decode(name string, r io.Reader, dec audio.Decoder, opts Options) (*Asset, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	defer src.Close()

	var pipeline audio.Source = src
	if opts.Mono && pipeline.Channels() > 1 {
		pipeline = audio.NewMonoMixer(pipeline)
	}
	if opts.SampleRate > 0 && pipeline.SampleRate() != opts.SampleRate {
		pipeline = audio.NewResampler(pipeline, opts.SampleRate)
	}

	samples, err := audio.ReadAll(pipeline)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return New(name, samples, pipeline.SampleRate(), pipeline.Channels())
}

// LoadFile decodes path with the decoder registered for its extension.
func LoadFile(path string, reg *audio.Registry, opts Options) (*Asset, error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening asset: %w", err)
	}
	defer f.Close()

	return Decode(filepath.Base(path), f, dec, opts)
}

// Valid reports whether the asset holds playable data. It is safe on nil.
func (a *Asset) Valid() bool {
	return a != nil && len(a.samples) >= a.channels && a.channels > 0
}

func (a *Asset) Name() string    { return a.name }
func (a *Asset) SampleRate() int { return a.sampleRate }
func (a *Asset) Channels() int   { return a.channels }

// Samples returns the interleaved PCM. Callers must not modify it.
func (a *Asset) Samples() []float32 { return a.samples }

// Frames returns the length in sample frames.
func (a *Asset) Frames() int {
	if a == nil || a.channels == 0 {
		return 0
	}

	return len(a.samples) / a.channels
}

// Duration returns the playback length at the native rate.
func (a *Asset) Duration() time.Duration {
	if a == nil || a.sampleRate == 0 {
		return 0
	}

	return time.Duration(a.Frames()) * time.Second / time.Duration(a.sampleRate)
}

// Source streams the asset from the start.
func (a *Asset) Source() audio.Source {
	src, _ := audio.NewPCMSource(a.samples, a.sampleRate, a.channels)
	return src
}

// Mono returns a downmixed copy, or a itself when already mono.
func (a *Asset) Mono() (*Asset, error) {
	if a.channels == 1 {
		return a, nil
	}

	samples, err := audio.ReadAll(audio.NewMonoMixer(a.Source()))
	if err != nil {
		return nil, fmt.Errorf("downmixing %s: %w", a.name, err)
	}

	return New(a.name, samples, a.sampleRate, 1)
}
