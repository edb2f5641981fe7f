// SPDX-License-Identifier: EPL-2.0

// Package miniaudio drives playback and capture devices through malgo.
// Playback pulls the software mix from the device callback; capture pushes
// into a ring buffer the engine drains on its own schedule.
package miniaudio

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/gen2brain/malgo"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/backend/softmix"
	"github.com/ik5/sndcore/internal/log"
)

type Backend struct {
	sampleRate   int
	bufferFrames int
	log          *logrus.Entry

	mu  sync.Mutex
	ctx *malgo.AllocatedContext
}

var _ backend.Backend = (*Backend)(nil)

func New(sampleRate, bufferFrames int) *Backend {
	return &Backend{
		sampleRate:   sampleRate,
		bufferFrames: bufferFrames,
		log:          log.Component("miniaudio"),
	}
}

func (b *Backend) Name() string { return "miniaudio" }

// context initializes the malgo context on first use.
func (b *Backend) context() (*malgo.AllocatedContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		return b.ctx, nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		b.log.Debug(strings.TrimSpace(msg))
	})
	if err != nil {
		return nil, fmt.Errorf("initializing miniaudio: %w", err)
	}
	b.ctx = ctx

	return ctx, nil
}

// Close releases the malgo context. Devices must be closed first.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx == nil {
		return nil
	}

	err := b.ctx.Uninit()
	b.ctx.Free()
	b.ctx = nil

	if err != nil {
		return fmt.Errorf("releasing miniaudio: %w", err)
	}

	return nil
}

func (b *Backend) infos(kind malgo.DeviceType) ([]malgo.DeviceInfo, error) {
	ctx, err := b.context()
	if err != nil {
		return nil, err
	}

	infos, err := ctx.Devices(kind)
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}

	return infos, nil
}

func (b *Backend) names(kind malgo.DeviceType) ([]string, error) {
	infos, err := b.infos(kind)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(infos))
	for i := range infos {
		names[i] = infos[i].Name()
	}

	return names, nil
}

func (b *Backend) PlaybackDevices() ([]string, error) { return b.names(malgo.Playback) }
func (b *Backend) CaptureDevices() ([]string, error)  { return b.names(malgo.Capture) }

// find resolves name to a device id. An empty name selects the default
// device, which malgo expresses as a nil id.
func (b *Backend) find(kind malgo.DeviceType, name string) (unsafe.Pointer, error) {
	if name == "" {
		return nil, nil
	}

	infos, err := b.infos(kind)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(infos))
	for i := range infos {
		names[i] = infos[i].Name()
	}

	idx, err := pick(names, name)
	if err != nil {
		return nil, err
	}

	return infos[idx].ID.Pointer(), nil
}

// pick prefers an exact name match and falls back to a case-insensitive
// substring so short hints like "usb" work.
func pick(names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}

	hint := strings.ToLower(name)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), hint) {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%q: %w", name, backend.ErrDeviceNotFound)
}

func (b *Backend) OpenDevice(name string) (backend.Device, error) {
	ctx, err := b.context()
	if err != nil {
		return nil, err
	}

	id, err := b.find(malgo.Playback, name)
	if err != nil {
		return nil, err
	}

	return &device{b: b, ctx: ctx, name: name, id: id}, nil
}

type device struct {
	b    *Backend
	ctx  *malgo.AllocatedContext
	name string
	id   unsafe.Pointer
}

func (d *device) Name() string { return d.name }
func (d *device) Close() error { return nil }

func (d *device) CreateContext() (backend.Context, error) {
	mixer := softmix.New(d.b.sampleRate)

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = softmix.Channels
	cfg.Playback.DeviceID = d.id
	cfg.SampleRate = uint32(d.b.sampleRate)
	if d.b.bufferFrames > 0 {
		cfg.PeriodSizeInFrames = uint32(d.b.bufferFrames)
	}

	dev, err := malgo.InitDevice(d.ctx.Context, cfg, malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) {
			_, _ = mixer.Read(out)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening playback device: %w", err)
	}

	if err := dev.Start(); err != nil {
		dev.Uninit()
		return nil, fmt.Errorf("starting playback device: %w", err)
	}

	return &playbackContext{Mixer: mixer, dev: dev}, nil
}

type playbackContext struct {
	*softmix.Mixer

	once sync.Once
	dev  *malgo.Device
}

func (c *playbackContext) Close() error {
	var err error
	c.once.Do(func() {
		if serr := c.dev.Stop(); serr != nil {
			err = fmt.Errorf("stopping playback device: %w", serr)
		}
		c.dev.Uninit()
	})

	if cerr := c.Mixer.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return err
}
