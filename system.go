// SPDX-License-Identifier: EPL-2.0

package sndcore

import (
	"fmt"
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/channel"
	"github.com/ik5/sndcore/config"
	"github.com/ik5/sndcore/device"
	"github.com/ik5/sndcore/formats"
	"github.com/ik5/sndcore/gain"
	"github.com/ik5/sndcore/internal/log"
	"github.com/ik5/sndcore/spatial"
)

// System is the audio engine facade.
type System struct {
	cfg  config.Config
	log  *logrus.Entry
	hint string

	backend  backend.Backend
	device   *device.Manager
	channels *channel.Registry
	gains    *gain.Mixer
	listener spatial.Listener
	store    config.Store
	decoders *audio.Registry
}

// New builds a System, opens cfg.Device and restores the saved gains. A
// device that fails to open is logged and leaves the System uninitialized;
// only configuration problems are returned as errors.
func New(cfg config.Config, opts ...Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &System{
		cfg:      cfg,
		log:      log.Component("sndcore"),
		listener: spatial.NewListener(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.decoders == nil {
		s.decoders = formats.DefaultRegistry()
	}

	if s.store == nil {
		if cfg.SettingsPath == "" {
			s.store = config.NewMemoryStore()
		} else {
			fs, err := config.OpenFileStore(cfg.SettingsPath)
			if err != nil {
				return nil, err
			}
			s.store = fs
		}
	}

	if s.backend == nil {
		b, err := OpenBackend(cfg, s.log)
		if err != nil {
			return nil, err
		}
		s.backend = b
	}

	s.channels = channel.NewRegistry(s.context, channel.WithLogger(s.log.WithField("component", "channel")))
	s.device = device.New(s.backend,
		device.WithLogger(s.log.WithField("component", "device")),
		device.WithTeardown(s.channels.Clear),
	)
	s.gains = gain.New(s.channels)

	s.Initialize(cfg.Device)
	s.LoadSoundSettings()

	return s, nil
}

func (s *System) context() backend.Context {
	return s.device.Context()
}

// Initialize opens the playback device named by hint, or the default.
func (s *System) Initialize(hint string) bool {
	s.hint = hint
	return s.device.Initialize(hint)
}

// Uninitialize stops every sound and recording and closes the device.
func (s *System) Uninitialize() {
	s.device.Uninitialize()
}

// Reset reopens the last requested device.
func (s *System) Reset() bool {
	s.Uninitialize()
	return s.Initialize(s.hint)
}

func (s *System) IsInitialized() bool { return s.device.IsInitialized() }

// Close uninitializes and releases the backend.
func (s *System) Close() error {
	s.Uninitialize()

	if c, ok := s.backend.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing %s backend: %w", s.backend.Name(), err)
		}
	}

	return nil
}

// Decoders is the registry used by LoadAsset and DecodeAsset.
func (s *System) Decoders() *audio.Registry { return s.decoders }

// resolve reuses existing while the registry still owns it, otherwise it
// allocates a new channel.
func (s *System) resolve(existing *channel.Channel, typ channel.Type) *channel.Channel {
	if existing != nil && s.channels.Contains(existing) {
		return existing
	}

	return s.channels.Allocate(typ)
}

func (s *System) prepare(existing *channel.Channel, typ channel.Type, positional bool, pos mgl32.Vec3) *channel.Channel {
	ch := s.resolve(existing, typ)
	s.gains.ApplyTo(ch)
	ch.SetPositional(positional)
	if positional {
		ch.SetPosition(pos)
		ch.Attenuate(s.listener.Position)
	}

	return ch
}

// PlaySound plays a without positioning on existing or a new channel of
// type typ. It returns nil when the device is not initialized.
func (s *System) PlaySound(a *asset.Asset, typ channel.Type, existing *channel.Channel) *channel.Channel {
	if !s.IsInitialized() {
		return nil
	}

	ch := s.prepare(existing, typ, false, mgl32.Vec3{})
	ch.Play(a)

	return ch
}

// PlaySound3D is PlaySound for a sound located at pos.
func (s *System) PlaySound3D(pos mgl32.Vec3, a *asset.Asset, typ channel.Type, existing *channel.Channel) *channel.Channel {
	if !s.IsInitialized() {
		return nil
	}

	ch := s.prepare(existing, typ, true, pos)
	ch.Play(a)

	return ch
}

// PlaySoundBuffer queues raw PCM on existing or a new channel.
func (s *System) PlaySoundBuffer(buf asset.SoundBuffer, typ channel.Type, existing *channel.Channel) *channel.Channel {
	if !s.IsInitialized() {
		return nil
	}

	ch := s.prepare(existing, typ, false, mgl32.Vec3{})
	ch.AddBuffer(s.bufferAsset(buf))

	return ch
}

// PlaySoundBuffer3D is PlaySoundBuffer for a sound located at pos.
func (s *System) PlaySoundBuffer3D(buf asset.SoundBuffer, typ channel.Type, pos mgl32.Vec3, existing *channel.Channel) *channel.Channel {
	if !s.IsInitialized() {
		return nil
	}

	ch := s.prepare(existing, typ, true, pos)
	ch.AddBuffer(s.bufferAsset(buf))

	return ch
}

func (s *System) bufferAsset(buf asset.SoundBuffer) *asset.Asset {
	a, err := asset.FromSoundBuffer(buf)
	if err != nil {
		s.log.WithError(err).Debug("dropping sound buffer")
		return nil
	}

	return a
}

// Stop stops ch. A nil channel is ignored.
func (s *System) Stop(ch *channel.Channel) {
	if ch == nil {
		return
	}

	ch.Stop()
}

// Update is the per frame entry point.
func (s *System) Update(time.Duration) {
	s.device.SetListener(s.listener)
	s.channels.Update(s.listener.Position)
}

// ActiveSounds returns the channels that are not stopped.
func (s *System) ActiveSounds() []*channel.Channel {
	return s.channels.ActiveChannels()
}

func (s *System) SetListener(l spatial.Listener)               { s.listener = l }
func (s *System) Listener() spatial.Listener                   { return s.listener }
func (s *System) SetListenerPosition(pos mgl32.Vec3)           { s.listener.Position = pos }
func (s *System) ListenerPosition() mgl32.Vec3                 { return s.listener.Position }
func (s *System) SetListenerOrientation(q mgl32.Quat)          { s.listener.Orientation = q }
func (s *System) ListenerOrientation() mgl32.Quat              { return s.listener.Orientation }
func (s *System) SetMasterGain(g float32)                      { s.gains.SetMasterGain(g) }
func (s *System) MasterGain() float32                          { return s.gains.MasterGain() }
func (s *System) SetSoundMasterGain(t channel.Type, g float32) { s.gains.SetCategoryGain(t, g) }
func (s *System) SoundMasterGain(t channel.Type) float32       { return s.gains.CategoryGain(t) }

func (s *System) PlaybackDevices() []string  { return s.device.PlaybackDevices() }
func (s *System) RecordingDevices() []string { return s.device.RecordingDevices() }

// StartRecording opens and starts a capture device. bufferSizeBytes sizes
// the capture buffer.
func (s *System) StartRecording(name string, frequency int, sixteenBit, stereo bool, bufferSizeBytes int) bool {
	return s.device.StartRecording(name, frequency, sixteenBit, stereo, bufferSizeBytes)
}

func (s *System) StopRecording()                   { s.device.StopRecording() }
func (s *System) RecordedSoundSize() int           { return s.device.RecordedSoundSize() }
func (s *System) RecordedSoundData(buf []byte) int { return s.device.RecordedSoundData(buf) }

// LoadAsset decodes a file by extension. While a device is open the asset
// is resampled to its rate.
func (s *System) LoadAsset(path string) (*asset.Asset, error) {
	return asset.LoadFile(path, s.decoders, asset.Options{SampleRate: s.device.SampleRate()})
}

// DecodeAsset decodes r with the decoder registered for format.
func (s *System) DecodeAsset(name string, r io.Reader, format string) (*asset.Asset, error) {
	dec, ok := s.decoders.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return asset.Decode(name, r, dec, asset.Options{SampleRate: s.device.SampleRate()})
}

// CreateAssetFromSoundBuffer wraps raw PCM into an asset.
func (s *System) CreateAssetFromSoundBuffer(buf asset.SoundBuffer) (*asset.Asset, error) {
	return asset.FromSoundBuffer(buf)
}
