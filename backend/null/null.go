// SPDX-License-Identifier: EPL-2.0

// Package null is a headless backend. Playback is mixed in real time and
// thrown away so sounds still finish on schedule; capture yields silence.
package null

import (
	"sync"
	"time"

	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/backend/softmix"
)

// DeviceName is the only device the backend reports.
const DeviceName = "null"

// DefaultPeriod is how often the clock pumps the mixer and capture.
const DefaultPeriod = 10 * time.Millisecond

type Backend struct {
	sampleRate int
	period     time.Duration
}

var _ backend.Backend = (*Backend)(nil)

func New(sampleRate int) *Backend {
	return &Backend{sampleRate: sampleRate, period: DefaultPeriod}
}

// WithPeriod changes the clock period.
func (b *Backend) WithPeriod(d time.Duration) *Backend {
	if d > 0 {
		b.period = d
	}

	return b
}

func (b *Backend) Name() string { return "null" }

func (b *Backend) PlaybackDevices() ([]string, error) {
	return []string{DeviceName}, nil
}

func (b *Backend) CaptureDevices() ([]string, error) {
	return []string{DeviceName}, nil
}

// OpenDevice always succeeds, whatever the name.
func (b *Backend) OpenDevice(name string) (backend.Device, error) {
	if name == "" {
		name = DeviceName
	}

	return &device{name: name, b: b}, nil
}

func (b *Backend) OpenCapture(_ string, format backend.CaptureFormat) (backend.Capture, error) {
	if format.Frequency <= 0 {
		return nil, backend.ErrInvalidFormat
	}

	return &capture{
		ring:   backend.NewCaptureRing(format),
		format: format,
		period: b.period,
	}, nil
}

type device struct {
	name string
	b    *Backend
}

func (d *device) Name() string { return d.name }
func (d *device) Close() error { return nil }

func (d *device) CreateContext() (backend.Context, error) {
	c := &playbackContext{
		Mixer: softmix.New(d.b.sampleRate),
		done:  make(chan struct{}),
	}

	frames := max(d.b.sampleRate*int(d.b.period)/int(time.Second), 1)
	c.wg.Add(1)
	go c.pump(d.b.period, make([]float32, frames*softmix.Channels))

	return c, nil
}

type playbackContext struct {
	*softmix.Mixer

	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func (c *playbackContext) pump(period time.Duration, buf []float32) {
	defer c.wg.Done()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.Render(buf)
		}
	}
}

func (c *playbackContext) Close() error {
	c.once.Do(func() {
		close(c.done)
		c.wg.Wait()
	})

	return c.Mixer.Close()
}

type capture struct {
	ring   *backend.CaptureRing
	format backend.CaptureFormat
	period time.Duration

	mu   sync.Mutex
	done chan struct{}
	wg   sync.WaitGroup
}

func (c *capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		return nil
	}

	frames := max(c.format.Frequency*int(c.period)/int(time.Second), 1)
	silence := make([]byte, frames*c.format.SampleSize())
	if !c.format.SixteenBit {
		// unsigned 8-bit silence
		for i := range silence {
			silence[i] = 128
		}
	}

	c.done = make(chan struct{})
	c.wg.Add(1)
	go c.run(c.done, silence)

	return nil
}

func (c *capture) run(done <-chan struct{}, silence []byte) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.period)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.ring.Write(silence)
		}
	}
}

func (c *capture) Stop() error {
	c.mu.Lock()
	done := c.done
	c.done = nil
	c.mu.Unlock()

	if done != nil {
		close(done)
		c.wg.Wait()
	}

	return nil
}

func (c *capture) Available() int { return c.ring.Frames() }

func (c *capture) Read(dst []byte, frames int) int {
	return c.ring.Read(dst, frames)
}

func (c *capture) Close() error {
	err := c.Stop()
	c.ring.Reset()

	return err
}
