// SPDX-License-Identifier: EPL-2.0

// Package voice plays a stream of compressed voice packets on a single
// Voice channel.
package voice

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/channel"
	"github.com/ik5/sndcore/internal/log"
)

// Player is the part of the engine a Stream plays through. *sndcore.System
// implements it.
type Player interface {
	PlaySoundBuffer(buf asset.SoundBuffer, typ channel.Type, existing *channel.Channel) *channel.Channel
	PlaySoundBuffer3D(buf asset.SoundBuffer, typ channel.Type, pos mgl32.Vec3, existing *channel.Channel) *channel.Channel
	Stop(ch *channel.Channel)
}

// Stats counts packets seen by a Stream.
type Stats struct {
	Played  int
	Dropped int
}

// Stream decodes packets and queues the PCM on one channel, reusing it
// while it lives. Like the engine it must be used from one goroutine.
type Stream struct {
	player Player
	dec    Decoder
	log    *logrus.Entry

	ch         *channel.Channel
	positional bool
	position   mgl32.Vec3
	stats      Stats
}

type Option func(*Stream)

func WithLogger(l *logrus.Entry) Option {
	return func(s *Stream) { s.log = l }
}

func NewStream(p Player, dec Decoder, opts ...Option) *Stream {
	s := &Stream{
		player: p,
		dec:    dec,
		log:    log.Component("voice"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Push decodes packet and queues it. Bad packets are logged and dropped.
func (s *Stream) Push(packet []byte) bool {
	if len(packet) == 0 {
		s.log.Debug("dropping empty voice packet")
		s.stats.Dropped++
		return false
	}

	pcm, rate, stereo, err := s.dec.Decode(packet)
	if err != nil {
		s.log.WithFields(logrus.Fields{"size": len(packet)}).WithError(err).Warn("dropping undecodable voice packet")
		s.stats.Dropped++
		return false
	}

	buf := asset.SoundBuffer{
		Data:       pcm,
		Frequency:  rate,
		SixteenBit: true,
		Stereo:     stereo,
	}

	var ch *channel.Channel
	if s.positional {
		ch = s.player.PlaySoundBuffer3D(buf, channel.Voice, s.position, s.ch)
	} else {
		ch = s.player.PlaySoundBuffer(buf, channel.Voice, s.ch)
	}

	if ch == nil {
		s.stats.Dropped++
		return false
	}

	s.ch = ch
	s.stats.Played++

	return true
}

// SetPosition plays following packets positionally at pos.
func (s *Stream) SetPosition(pos mgl32.Vec3) {
	s.positional = true
	s.position = pos
}

// ClearPosition plays following packets without positioning.
func (s *Stream) ClearPosition() {
	s.positional = false
}

// Channel returns the channel last used, or nil.
func (s *Stream) Channel() *channel.Channel { return s.ch }

func (s *Stream) Stats() Stats { return s.stats }

// Close stops the channel.
func (s *Stream) Close() {
	if s.ch != nil {
		s.player.Stop(s.ch)
		s.ch = nil
	}
}
