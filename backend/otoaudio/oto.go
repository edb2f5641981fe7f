// SPDX-License-Identifier: EPL-2.0

// Package otoaudio plays the software mix through ebitengine/oto. Oto
// supports a single context per process and has no device selection or
// capture, so the backend exposes one default device.
package otoaudio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/backend/softmix"
)

// DeviceName is the name reported for the system default output.
const DeviceName = "default"

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

// sharedContext creates the process wide oto context on first use. Later
// callers get the same context and the rate it was first created with.
func sharedContext(sampleRate int, bufferFrames int) (*oto.Context, int, error) {
	otoOnce.Do(func() {
		opts := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: softmix.Channels,
			Format:       oto.FormatFloat32LE,
		}
		if bufferFrames > 0 && sampleRate > 0 {
			opts.BufferSize = secondsOf(bufferFrames, sampleRate)
		}

		ctx, ready, err := oto.NewContext(opts)
		if err != nil {
			otoErr = fmt.Errorf("creating oto context: %w", err)
			return
		}
		<-ready

		otoCtx, otoRate = ctx, sampleRate
	})

	return otoCtx, otoRate, otoErr
}

func secondsOf(frames, sampleRate int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}

type Backend struct {
	sampleRate   int
	bufferFrames int
}

var _ backend.Backend = (*Backend)(nil)

func New(sampleRate, bufferFrames int) *Backend {
	return &Backend{sampleRate: sampleRate, bufferFrames: bufferFrames}
}

func (b *Backend) Name() string { return "oto" }

func (b *Backend) PlaybackDevices() ([]string, error) {
	return []string{DeviceName}, nil
}

func (b *Backend) CaptureDevices() ([]string, error) {
	return nil, backend.ErrUnsupported
}

// OpenDevice accepts only the default device.
func (b *Backend) OpenDevice(name string) (backend.Device, error) {
	if name != "" && name != DeviceName {
		return nil, fmt.Errorf("%q: %w", name, backend.ErrDeviceNotFound)
	}

	ctx, rate, err := sharedContext(b.sampleRate, b.bufferFrames)
	if err != nil {
		return nil, err
	}

	return &device{ctx: ctx, rate: rate}, nil
}

func (b *Backend) OpenCapture(string, backend.CaptureFormat) (backend.Capture, error) {
	return nil, backend.ErrUnsupported
}

type device struct {
	ctx  *oto.Context
	rate int
}

func (d *device) Name() string { return DeviceName }

// Close is a no-op: the oto context lives for the whole process.
func (d *device) Close() error { return nil }

func (d *device) CreateContext() (backend.Context, error) {
	mixer := softmix.New(d.rate)

	player := d.ctx.NewPlayer(mixer)
	player.Play()

	return &playbackContext{Mixer: mixer, player: player}, nil
}

type playbackContext struct {
	*softmix.Mixer

	once   sync.Once
	player *oto.Player
}

func (c *playbackContext) Close() error {
	var err error
	c.once.Do(func() {
		c.player.Pause()
		if cerr := c.player.Close(); cerr != nil {
			err = fmt.Errorf("closing oto player: %w", cerr)
		}
	})

	if cerr := c.Mixer.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}
