// SPDX-License-Identifier: EPL-2.0

// Package gain keeps the master and per category gains and pushes their
// product to channels.
package gain

import "github.com/ik5/sndcore/channel"

// Mixer holds the gain state. Values are not clamped; the backend does
// that at output.
type Mixer struct {
	reg     *channel.Registry
	master  float32
	perType map[channel.Type]float32
}

// New returns a mixer with every gain at 1 that applies changes to the
// channels of reg.
func New(reg *channel.Registry) *Mixer {
	m := &Mixer{
		reg:     reg,
		master:  1,
		perType: make(map[channel.Type]float32, len(channel.Types)),
	}
	for _, t := range channel.Types {
		m.perType[t] = 1
	}

	return m
}

func (m *Mixer) MasterGain() float32 { return m.master }

// CategoryGain returns the gain of t. Unknown categories are at 1.
func (m *Mixer) CategoryGain(t channel.Type) float32 {
	g, ok := m.perType[t]
	if !ok {
		return 1
	}

	return g
}

// For is the effective gain of category t.
func (m *Mixer) For(t channel.Type) float32 {
	return m.master * m.CategoryGain(t)
}

// EffectiveGain is the effective gain for ch's category.
func (m *Mixer) EffectiveGain(ch *channel.Channel) float32 {
	return m.For(ch.Type())
}

func (m *Mixer) SetMasterGain(g float32) {
	m.master = g
	m.Apply()
}

func (m *Mixer) SetCategoryGain(t channel.Type, g float32) {
	m.perType[t] = g
	m.Apply()
}

// ApplyTo sets ch's master gain to its effective gain.
func (m *Mixer) ApplyTo(ch *channel.Channel) {
	ch.SetMasterGain(m.EffectiveGain(ch))
}

// Apply pushes effective gains to every registered channel.
func (m *Mixer) Apply() {
	if m.reg == nil {
		return
	}

	m.reg.Each(m.ApplyTo)
}
