// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/backend"
)

// FakeBackend is a scripted backend.Backend. Set the Fail* fields to make
// the matching call fail. It is not safe for concurrent use, which matches
// the single threaded engine core it serves.
type FakeBackend struct {
	Playback  []string
	Recording []string
	Rate      int

	FailEnumerate error
	FailOpen      error
	FailContext   error
	FailVoice     error
	FailCapture   error

	// CaptureFrames is what every new capture reports as available.
	CaptureFrames int

	Devices  []*FakeDevice
	Contexts []*FakeContext
	Captures []*FakeCapture
}

var _ backend.Backend = (*FakeBackend)(nil)

// NewFakeBackend returns a backend with one default playback and one
// capture device at 44.1kHz.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Playback:  []string{"Fake Speakers"},
		Recording: []string{"Fake Microphone"},
		Rate:      44100,
	}
}

func (b *FakeBackend) Name() string { return "fake" }

func (b *FakeBackend) PlaybackDevices() ([]string, error) {
	if b.FailEnumerate != nil {
		return nil, b.FailEnumerate
	}

	return b.Playback, nil
}

func (b *FakeBackend) CaptureDevices() ([]string, error) {
	if b.FailEnumerate != nil {
		return nil, b.FailEnumerate
	}

	return b.Recording, nil
}

func (b *FakeBackend) OpenDevice(name string) (backend.Device, error) {
	if b.FailOpen != nil {
		return nil, b.FailOpen
	}

	d := &FakeDevice{b: b, name: name}
	b.Devices = append(b.Devices, d)

	return d, nil
}

func (b *FakeBackend) OpenCapture(name string, format backend.CaptureFormat) (backend.Capture, error) {
	if b.FailCapture != nil {
		return nil, b.FailCapture
	}

	c := &FakeCapture{Name: name, Format: format, Frames: b.CaptureFrames}
	b.Captures = append(b.Captures, c)

	return c, nil
}

// LastContext returns the most recently created context or nil.
func (b *FakeBackend) LastContext() *FakeContext {
	if len(b.Contexts) == 0 {
		return nil
	}

	return b.Contexts[len(b.Contexts)-1]
}

// LastCapture returns the most recently opened capture or nil.
func (b *FakeBackend) LastCapture() *FakeCapture {
	if len(b.Captures) == 0 {
		return nil
	}

	return b.Captures[len(b.Captures)-1]
}

type FakeDevice struct {
	b      *FakeBackend
	name   string
	Closed bool
}

func (d *FakeDevice) Name() string { return d.name }

func (d *FakeDevice) Close() error {
	d.Closed = true
	return nil
}

func (d *FakeDevice) CreateContext() (backend.Context, error) {
	if d.b.FailContext != nil {
		return nil, d.b.FailContext
	}

	c := &FakeContext{b: d.b, rate: d.b.Rate}
	d.b.Contexts = append(d.b.Contexts, c)

	return c, nil
}

type FakeContext struct {
	b    *FakeBackend
	rate int

	Voices []*FakeVoice
	Closed bool

	ListenerPos, ListenerFront, ListenerUp mgl32.Vec3
	ListenerUpdates                        int
}

func (c *FakeContext) SampleRate() int { return c.rate }

func (c *FakeContext) NewVoice() (backend.Voice, error) {
	if c.b.FailVoice != nil {
		return nil, c.b.FailVoice
	}
	if c.Closed {
		return nil, backend.ErrClosed
	}

	v := &FakeVoice{Gain: 1, Pitch: 1}
	c.Voices = append(c.Voices, v)

	return v, nil
}

func (c *FakeContext) SetListener(pos, front, up mgl32.Vec3) {
	c.ListenerPos, c.ListenerFront, c.ListenerUp = pos, front, up
	c.ListenerUpdates++
}

func (c *FakeContext) Close() error {
	c.Closed = true
	for _, v := range c.Voices {
		v.Stop()
	}

	return nil
}

// FakeVoice records every call. Playback never progresses on its own; call
// Finish to simulate the driver draining the queue.
type FakeVoice struct {
	Assets     []*asset.Asset
	Gain       float32
	Pitch      float32
	Looped     bool
	Positional bool
	Position   mgl32.Vec3
	Closed     bool
	Stops      int

	playing bool
}

func (v *FakeVoice) Queue(a *asset.Asset) error {
	if v.Closed {
		return backend.ErrClosed
	}

	v.Assets = append(v.Assets, a)
	return nil
}

func (v *FakeVoice) Play() {
	if len(v.Assets) > 0 {
		v.playing = true
	}
}

func (v *FakeVoice) Stop() {
	v.Stops++
	v.playing = false
	v.Assets = nil
}

func (v *FakeVoice) Playing() bool { return v.playing }
func (v *FakeVoice) Queued() int   { return len(v.Assets) }

func (v *FakeVoice) SetGain(g float32)     { v.Gain = g }
func (v *FakeVoice) SetLooped(looped bool) { v.Looped = looped }

func (v *FakeVoice) SetPitch(p float32) {
	if p > 0 {
		v.Pitch = p
	}
}

func (v *FakeVoice) SetPosition(positional bool, pos mgl32.Vec3) {
	v.Positional = positional
	v.Position = pos
}

func (v *FakeVoice) Close() error {
	v.Closed = true
	v.playing = false
	v.Assets = nil

	return nil
}

// Finish drains the queue as if playback completed.
func (v *FakeVoice) Finish() {
	v.playing = false
	v.Assets = nil
}

// FakeCapture reports Frames as available and reads a byte ramp.
type FakeCapture struct {
	Name    string
	Format  backend.CaptureFormat
	Frames  int
	Started bool
	Closed  bool
}

func (c *FakeCapture) Start() error {
	c.Started = true
	return nil
}

func (c *FakeCapture) Stop() error {
	c.Started = false
	return nil
}

func (c *FakeCapture) Available() int { return c.Frames }

func (c *FakeCapture) Read(dst []byte, frames int) int {
	frames = min(frames, c.Frames, len(dst)/c.Format.SampleSize())
	for i := range frames * c.Format.SampleSize() {
		dst[i] = byte(i)
	}
	c.Frames -= frames

	return frames
}

func (c *FakeCapture) Close() error {
	c.Closed = true
	c.Started = false

	return nil
}
