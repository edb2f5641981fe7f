// SPDX-License-Identifier: EPL-2.0

package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/ik5/sndcore/backend"
)

func sampleFormat(f backend.CaptureFormat) malgo.FormatType {
	if f.SixteenBit {
		return malgo.FormatS16
	}

	return malgo.FormatU8
}

func (b *Backend) OpenCapture(name string, format backend.CaptureFormat) (backend.Capture, error) {
	if format.Frequency <= 0 {
		return nil, backend.ErrInvalidFormat
	}

	ctx, err := b.context()
	if err != nil {
		return nil, err
	}

	id, err := b.find(malgo.Capture, name)
	if err != nil {
		return nil, err
	}

	ring := backend.NewCaptureRing(format)

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = sampleFormat(format)
	cfg.Capture.Channels = uint32(format.Channels())
	cfg.Capture.DeviceID = id
	cfg.SampleRate = uint32(format.Frequency)

	dev, err := malgo.InitDevice(ctx.Context, cfg, malgo.DeviceCallbacks{
		Data: func(_, in []byte, _ uint32) {
			ring.Write(in)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening capture device: %w", err)
	}

	return &capture{dev: dev, ring: ring}, nil
}

type capture struct {
	dev  *malgo.Device
	ring *backend.CaptureRing

	mu      sync.Mutex
	started bool
	closed  bool
}

func (c *capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return backend.ErrClosed
	}
	if c.started {
		return nil
	}

	if err := c.dev.Start(); err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}
	c.started = true

	return nil
}

func (c *capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}
	c.started = false

	if err := c.dev.Stop(); err != nil {
		return fmt.Errorf("stopping capture: %w", err)
	}

	return nil
}

func (c *capture) Available() int { return c.ring.Frames() }

func (c *capture) Read(dst []byte, frames int) int {
	return c.ring.Read(dst, frames)
}

func (c *capture) Close() error {
	err := c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.dev.Uninit()
		c.closed = true
	}

	return err
}
