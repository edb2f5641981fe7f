// SPDX-License-Identifier: EPL-2.0

// Package backend defines what the engine needs from a native audio driver.
// Implementations live in the sub packages; the engine core only talks to
// these interfaces.
package backend

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/sndcore/asset"
)

// Backend enumerates and opens hardware devices.
type Backend interface {
	Name() string

	PlaybackDevices() ([]string, error)
	CaptureDevices() ([]string, error)

	// OpenDevice opens the named playback device, or the system default
	// when name is empty.
	OpenDevice(name string) (Device, error)

	// OpenCapture opens the named capture device, or the system default
	// when name is empty. The capture is stopped until Start is called.
	OpenCapture(name string, format CaptureFormat) (Capture, error)
}

// Device is an open playback device.
type Device interface {
	Name() string
	CreateContext() (Context, error)
	Close() error
}

// Context renders voices on a device.
type Context interface {
	// SampleRate is the output rate. Assets at another rate are resampled
	// on the fly.
	SampleRate() int
	NewVoice() (Voice, error)
	SetListener(pos, front, up mgl32.Vec3)
	Close() error
}

// Voice is a single playback source with a queue of assets.
type Voice interface {
	// Queue appends an asset. It does not start playback.
	Queue(a *asset.Asset) error
	Play()
	Stop()
	// Playing is false once the queue has drained or after Stop.
	Playing() bool
	// Queued counts assets not yet finished, the current one included.
	Queued() int

	SetGain(g float32)
	SetPitch(p float32)
	SetLooped(looped bool)
	// SetPosition switches between positional and listener-relative
	// playback.
	SetPosition(positional bool, pos mgl32.Vec3)

	Close() error
}

// CaptureFormat describes the PCM produced by a Capture.
type CaptureFormat struct {
	Frequency  int
	SixteenBit bool
	Stereo     bool
	// BufferFrames is the capacity of the capture buffer in sample frames.
	BufferFrames int
}

// SampleSize is the size in bytes of one sample frame.
func (f CaptureFormat) SampleSize() int {
	size := 1
	if f.SixteenBit {
		size = 2
	}
	if f.Stereo {
		size *= 2
	}

	return size
}

func (f CaptureFormat) Channels() int {
	if f.Stereo {
		return 2
	}

	return 1
}

// Capture is an open recording device.
type Capture interface {
	Start() error
	Stop() error
	// Available is the number of captured sample frames ready to Read.
	Available() int
	// Read moves up to frames sample frames into dst and returns the number
	// of frames moved. dst must hold frames*SampleSize bytes.
	Read(dst []byte, frames int) int
	Close() error
}
