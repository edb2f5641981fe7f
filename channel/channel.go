// SPDX-License-Identifier: EPL-2.0

// Package channel implements sound channels and the registry that owns
// them. Everything here runs on the engine's frame thread.
package channel

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/spatial"
)

// ContextFunc returns the context voices are created on, or nil when no
// device is open.
type ContextFunc func() backend.Context

// Channel is one playing or queued sound. Callers may hold on to a Channel
// and Stop it, but only the Registry removes it. Once removed a channel
// refuses to play again.
type Channel struct {
	id    ID
	typ   Type
	state State

	positional  bool
	position    mgl32.Vec3
	attenuation float32

	gain       float32
	masterGain float32
	pitch      float32
	looped     bool

	inner, outer, rolloff float32

	voice   backend.Voice
	context ContextFunc
	log     *logrus.Entry
}

func newChannel(id ID, typ Type, context ContextFunc, l *logrus.Entry) *Channel {
	return &Channel{
		id:          id,
		typ:         typ,
		state:       Pending,
		attenuation: 1,
		gain:        1,
		masterGain:  1,
		pitch:       1,
		inner:       spatial.DefaultInnerRadius,
		outer:       spatial.DefaultOuterRadius,
		rolloff:     spatial.DefaultRolloff,
		context:     context,
		log:         l.WithFields(logrus.Fields{"channel": id, "type": typ.String()}),
	}
}

func (c *Channel) ID() ID               { return c.id }
func (c *Channel) Type() Type           { return c.typ }
func (c *Channel) State() State         { return c.state }
func (c *Channel) Positional() bool     { return c.positional }
func (c *Channel) Position() mgl32.Vec3 { return c.position }
func (c *Channel) Gain() float32        { return c.gain }
func (c *Channel) MasterGain() float32  { return c.masterGain }
func (c *Channel) Pitch() float32       { return c.pitch }
func (c *Channel) Looped() bool         { return c.looped }

// Attenuation is the distance factor computed by the last Attenuate or
// Update.
func (c *Channel) Attenuation() float32 { return c.attenuation }

// Range returns the distance model parameters.
func (c *Channel) Range() (inner, outer, rolloff float32) {
	return c.inner, c.outer, c.rolloff
}

// OutputGain is the level handed to the backend.
func (c *Channel) OutputGain() float32 {
	return c.masterGain * c.gain * c.attenuation
}

// acquire lazily opens the backend voice.
func (c *Channel) acquire() bool {
	if c.voice != nil {
		return true
	}

	if c.context == nil {
		c.log.Debug("channel was removed from its registry")
		return false
	}

	ctx := c.context()
	if ctx == nil {
		c.log.Warn("no playback context")
		return false
	}

	v, err := ctx.NewVoice()
	if err != nil {
		c.log.WithError(err).Warn("could not create voice")
		return false
	}

	c.voice = v
	v.SetGain(c.OutputGain())
	v.SetPitch(c.pitch)
	v.SetLooped(c.looped)
	v.SetPosition(c.positional, c.position)

	return true
}

func (c *Channel) release() {
	if c.voice == nil {
		return
	}

	c.voice.Stop()
	if err := c.voice.Close(); err != nil {
		c.log.WithError(err).Debug("closing voice")
	}
	c.voice = nil
}

// detach stops the channel for good. A detached channel can never acquire
// another voice.
func (c *Channel) detach() {
	c.release()
	c.state = Stopped
	c.context = nil
}

// fail leaves the channel Stopped with its voice released.
func (c *Channel) fail() bool {
	c.release()
	c.state = Stopped

	return false
}

// Play replaces whatever the channel was doing with a, from the start. An
// asset without decoded data leaves the channel Stopped.
func (c *Channel) Play(a *asset.Asset) bool {
	if c.voice != nil {
		c.voice.Stop()
	}

	if !a.Valid() {
		c.log.Debug("ignoring asset without decoded data")
		return c.fail()
	}

	if !c.acquire() {
		return c.fail()
	}

	if err := c.voice.Queue(a); err != nil {
		c.log.WithError(err).WithField("asset", a.Name()).Warn("could not queue asset")
		return c.fail()
	}

	c.voice.Play()
	c.state = Playing

	return true
}

// AddBuffer appends a to the playback queue, starting playback when the
// channel is not already playing.
func (c *Channel) AddBuffer(a *asset.Asset) bool {
	if !a.Valid() {
		c.log.Debug("ignoring empty buffer")
		if c.state == Pending {
			c.state = Stopped
		}
		return false
	}

	if !c.acquire() {
		return c.fail()
	}

	if err := c.voice.Queue(a); err != nil {
		c.log.WithError(err).Warn("could not queue buffer")
		return c.fail()
	}

	if !c.voice.Playing() {
		c.voice.Play()
	}
	c.state = Playing

	return true
}

// Stop halts playback and releases the voice. Stopping a stopped channel
// does nothing.
func (c *Channel) Stop() {
	if c.state == Stopped {
		return
	}

	c.release()
	c.state = Stopped
}

// Update recomputes attenuation for positional channels and detects
// natural completion.
func (c *Channel) Update(listener mgl32.Vec3) {
	if c.state != Playing {
		return
	}

	c.Attenuate(listener)

	if !c.voice.Playing() && c.voice.Queued() == 0 {
		c.release()
		c.state = Stopped
	}
}

// Attenuate recomputes the distance factor of a positional channel for a
// listener at listener.
func (c *Channel) Attenuate(listener mgl32.Vec3) {
	if !c.positional {
		return
	}

	dist := listener.Sub(c.position).Len()
	c.attenuation = spatial.Attenuation(dist, c.inner, c.outer, c.rolloff)
	c.applyGain()
}

func (c *Channel) applyGain() {
	if c.voice != nil {
		c.voice.SetGain(c.OutputGain())
	}
}

// SetMasterGain sets the category derived gain factor.
func (c *Channel) SetMasterGain(g float32) {
	c.masterGain = g
	c.applyGain()
}

// SetGain sets the channel's own gain factor.
func (c *Channel) SetGain(g float32) {
	c.gain = g
	c.applyGain()
}

// SetPitch sets the playback rate multiplier. Non-positive values are
// ignored.
func (c *Channel) SetPitch(p float32) {
	if p <= 0 {
		return
	}

	c.pitch = p
	if c.voice != nil {
		c.voice.SetPitch(p)
	}
}

func (c *Channel) SetLooped(looped bool) {
	c.looped = looped
	if c.voice != nil {
		c.voice.SetLooped(looped)
	}
}

func (c *Channel) SetPositional(positional bool) {
	c.positional = positional
	if !positional {
		c.attenuation = 1
		c.applyGain()
	}
	if c.voice != nil {
		c.voice.SetPosition(positional, c.position)
	}
}

func (c *Channel) SetPosition(pos mgl32.Vec3) {
	c.position = pos
	if c.voice != nil {
		c.voice.SetPosition(c.positional, pos)
	}
}

// SetRange sets the distance model used while positional.
func (c *Channel) SetRange(inner, outer, rolloff float32) {
	c.inner, c.outer, c.rolloff = inner, outer, rolloff
}
