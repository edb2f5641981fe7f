// SPDX-License-Identifier: EPL-2.0

// Package device owns the playback device, its rendering context and the
// optional capture device.
package device

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/internal/log"
	"github.com/ik5/sndcore/spatial"
)

// Manager is the device context. It is not safe for concurrent use.
type Manager struct {
	backend backend.Backend
	log     *logrus.Entry

	initialized bool
	dev         backend.Device
	ctx         backend.Context

	capture           backend.Capture
	captureSampleSize int

	teardown []func()
}

type Option func(*Manager)

// WithLogger replaces the component logger.
func WithLogger(l *logrus.Entry) Option {
	return func(m *Manager) { m.log = l }
}

// WithTeardown registers fn to run on Uninitialize, after recording stops
// and before the context is released.
func WithTeardown(fn func()) Option {
	return func(m *Manager) { m.teardown = append(m.teardown, fn) }
}

func New(b backend.Backend, opts ...Option) *Manager {
	m := &Manager{
		backend: b,
		log:     log.Component("device"),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// OnTeardown registers fn like WithTeardown.
func (m *Manager) OnTeardown(fn func()) {
	m.teardown = append(m.teardown, fn)
}

// Initialize opens the named playback device, or the default one for an
// empty hint, and creates its context. A previous initialization is torn
// down first. On failure nothing stays open.
func (m *Manager) Initialize(hint string) bool {
	if m.initialized {
		m.Uninitialize()
	}

	fields := logrus.Fields{"backend": m.backend.Name(), "device": hint}

	dev, err := m.backend.OpenDevice(hint)
	if err != nil {
		m.log.WithFields(fields).WithError(err).Warn("could not open playback device")
		return false
	}

	ctx, err := dev.CreateContext()
	if err != nil {
		m.log.WithFields(fields).WithError(err).Warn("could not create playback context")
		if cerr := dev.Close(); cerr != nil {
			m.log.WithFields(fields).WithError(cerr).Warn("closing playback device")
		}
		return false
	}

	m.dev, m.ctx = dev, ctx
	m.initialized = true

	if hint != "" {
		m.log.WithFields(fields).Info("opened playback device")
	} else {
		m.log.WithFields(fields).Debug("opened default playback device")
	}

	return true
}

// Uninitialize stops recording, runs the teardown hooks and releases the
// context then the device. It is a no-op when not initialized.
func (m *Manager) Uninitialize() {
	if !m.initialized {
		return
	}

	m.StopRecording()

	for _, fn := range m.teardown {
		fn()
	}

	if err := m.ctx.Close(); err != nil {
		m.log.WithError(err).Warn("closing playback context")
	}
	if err := m.dev.Close(); err != nil {
		m.log.WithError(err).Warn("closing playback device")
	}

	m.ctx, m.dev = nil, nil
	m.initialized = false
}

func (m *Manager) IsInitialized() bool { return m.initialized }

// Context returns the active rendering context, or nil.
func (m *Manager) Context() backend.Context {
	if !m.initialized {
		return nil
	}

	return m.ctx
}

// SampleRate is the output rate of the active context, or 0.
func (m *Manager) SampleRate() int {
	if !m.initialized {
		return 0
	}

	return m.ctx.SampleRate()
}

// SetListener pushes the listener pose to the active context.
func (m *Manager) SetListener(l spatial.Listener) {
	if !m.initialized {
		return
	}

	m.ctx.SetListener(l.Position, l.Front(), l.Up())
}

// PlaybackDevices lists playback device names. Enumeration errors yield an
// empty list.
func (m *Manager) PlaybackDevices() []string {
	return m.names(m.backend.PlaybackDevices)
}

// RecordingDevices lists capture device names.
func (m *Manager) RecordingDevices() []string {
	return m.names(m.backend.CaptureDevices)
}

func (m *Manager) names(list func() ([]string, error)) []string {
	names, err := list()
	if err != nil {
		m.log.WithError(err).Debug("device enumeration unavailable")
		return []string{}
	}
	if names == nil {
		return []string{}
	}

	return names
}

// StartRecording opens a capture device and starts it. Any running capture
// is stopped first. Requires Initialize.
func (m *Manager) StartRecording(name string, frequency int, sixteenBit, stereo bool, bufferSizeBytes int) bool {
	if !m.initialized {
		m.log.Warn("recording requested before initialization")
		return false
	}

	m.StopRecording()

	format := backend.CaptureFormat{
		Frequency:  frequency,
		SixteenBit: sixteenBit,
		Stereo:     stereo,
	}
	sampleSize := format.SampleSize()
	format.BufferFrames = bufferSizeBytes / sampleSize

	fields := logrus.Fields{
		"device":     name,
		"frequency":  frequency,
		"sampleSize": sampleSize,
		"frames":     format.BufferFrames,
	}

	capture, err := m.backend.OpenCapture(name, format)
	if err != nil {
		m.log.WithFields(fields).WithError(err).Error("could not open capture device")
		return false
	}

	if err := capture.Start(); err != nil {
		m.log.WithFields(fields).WithError(err).Error("could not start capture")
		if cerr := capture.Close(); cerr != nil {
			m.log.WithError(cerr).Warn("closing capture device")
		}
		return false
	}

	m.capture = capture
	m.captureSampleSize = sampleSize
	m.log.WithFields(fields).Info("recording started")

	return true
}

// StopRecording stops and closes the capture device, if any.
func (m *Manager) StopRecording() {
	if m.capture == nil {
		return
	}

	if err := m.capture.Stop(); err != nil {
		m.log.WithError(err).Warn("stopping capture")
	}
	if err := m.capture.Close(); err != nil {
		m.log.WithError(err).Warn("closing capture device")
	}

	m.capture = nil
	m.captureSampleSize = 0
}

func (m *Manager) Recording() bool { return m.capture != nil }

// RecordedSoundSize is the number of captured bytes ready to read.
func (m *Manager) RecordedSoundSize() int {
	if m.capture == nil {
		return 0
	}

	return m.capture.Available() * m.captureSampleSize
}

// RecordedSoundData copies captured bytes into buf and returns how many
// were written. The request is clamped to whole available sample frames.
func (m *Manager) RecordedSoundData(buf []byte) int {
	if m.capture == nil {
		return 0
	}

	frames := min(len(buf)/m.captureSampleSize, m.capture.Available())
	if frames <= 0 {
		return 0
	}

	return m.capture.Read(buf, frames) * m.captureSampleSize
}
