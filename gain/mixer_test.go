// SPDX-License-Identifier: EPL-2.0

package gain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/channel"
	"github.com/ik5/sndcore/internal/log"
)

func newRegistry() *channel.Registry {
	return channel.NewRegistry(func() backend.Context { return nil }, channel.WithLogger(log.Discard()))
}

func TestMixer_Defaults(t *testing.T) {
	m := New(newRegistry())

	assert.Equal(t, float32(1), m.MasterGain())
	for _, typ := range channel.Types {
		assert.Equal(t, float32(1), m.CategoryGain(typ))
		assert.Equal(t, float32(1), m.For(typ))
	}
	assert.Equal(t, float32(1), m.CategoryGain(channel.Type(42)))
}

func TestMixer_EffectiveGainProperty(t *testing.T) {
	reg := newRegistry()
	m := New(reg)

	var chans []*channel.Channel
	for i := range 9 {
		chans = append(chans, reg.Allocate(channel.Types[i%3]))
	}

	categories := []float32{0, 0.25, 1, 1.5, -0.5}
	masters := []float32{0, 0.5, 1, 2, -1}

	for i, cg := range categories {
		m.SetCategoryGain(channel.Types[i%3], cg)

		for _, g := range masters {
			m.SetMasterGain(g)

			for _, ch := range chans {
				want := g * m.CategoryGain(ch.Type())
				require.Equal(t, want, m.EffectiveGain(ch))
				require.Equal(t, want, ch.MasterGain(), "applied to %s channel", ch.Type())
			}
		}
	}
}

func TestMixer_CategoryOnlyAffectsItsType(t *testing.T) {
	reg := newRegistry()
	m := New(reg)

	ambient := reg.Allocate(channel.Ambient)
	voice := reg.Allocate(channel.Voice)

	m.SetMasterGain(0.5)
	m.SetCategoryGain(channel.Voice, 0.2)

	assert.Equal(t, float32(0.5), ambient.MasterGain())
	assert.InDelta(t, 0.1, voice.MasterGain(), 1e-7)
}

func TestMixer_NoClamping(t *testing.T) {
	m := New(nil)

	m.SetMasterGain(3)
	m.SetCategoryGain(channel.Triggered, -2)

	assert.Equal(t, float32(-6), m.For(channel.Triggered))
	assert.Equal(t, float32(3), m.For(channel.Ambient))
}

func TestMixer_ApplyTo(t *testing.T) {
	reg := newRegistry()
	m := New(reg)
	m.SetCategoryGain(channel.Ambient, 0.25)

	ch := reg.Allocate(channel.Ambient)
	assert.Equal(t, float32(1), ch.MasterGain())

	m.ApplyTo(ch)
	assert.Equal(t, float32(0.25), ch.MasterGain())
}
