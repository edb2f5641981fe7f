// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/internal/log"
)

// Registry owns every live channel and is the only place channels are
// destroyed.
type Registry struct {
	channels map[ID]*Channel
	nextID   ID
	context  ContextFunc
	log      *logrus.Entry
}

type Option func(*Registry)

func WithLogger(l *logrus.Entry) Option {
	return func(r *Registry) { r.log = l }
}

func NewRegistry(context ContextFunc, opts ...Option) *Registry {
	r := &Registry{
		channels: make(map[ID]*Channel),
		context:  context,
		log:      log.Component("channel"),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// nextFree advances to the next nonzero id not in use. Ids wrap after the
// top of the range.
func (r *Registry) nextFree() ID {
	for {
		r.nextID++
		if r.nextID == InvalidID {
			continue
		}
		if _, used := r.channels[r.nextID]; !used {
			return r.nextID
		}
	}
}

// Allocate creates a Pending channel of type t.
func (r *Registry) Allocate(t Type) *Channel {
	ch := newChannel(r.nextFree(), t, r.context, r.log)
	r.channels[ch.id] = ch

	return ch
}

func (r *Registry) Get(id ID) (*Channel, bool) {
	ch, ok := r.channels[id]
	return ch, ok
}

// Contains reports whether ch is the registered channel for its id.
func (r *Registry) Contains(ch *Channel) bool {
	if ch == nil {
		return false
	}

	got, ok := r.channels[ch.id]
	return ok && got == ch
}

func (r *Registry) Len() int { return len(r.channels) }

// Each calls fn for every registered channel in id order.
func (r *Registry) Each(fn func(*Channel)) {
	for _, id := range slices.Sorted(maps.Keys(r.channels)) {
		fn(r.channels[id])
	}
}

// Update runs every channel's Update then sweeps.
func (r *Registry) Update(listener mgl32.Vec3) {
	for _, ch := range r.channels {
		ch.Update(listener)
	}

	r.Sweep()
}

// Sweep removes Stopped channels and returns how many were removed.
func (r *Registry) Sweep() int {
	removed := 0
	for id, ch := range r.channels {
		if ch.state != Stopped {
			continue
		}

		ch.detach()
		delete(r.channels, id)
		removed++
	}

	if removed > 0 {
		r.log.WithField("removed", removed).Debug("swept stopped channels")
	}

	return removed
}

// ActiveChannels returns the channels that are not Stopped, by id.
func (r *Registry) ActiveChannels() []*Channel {
	active := make([]*Channel, 0, len(r.channels))
	r.Each(func(ch *Channel) {
		if ch.state != Stopped {
			active = append(active, ch)
		}
	})

	return active
}

// Clear stops and drops every channel.
func (r *Registry) Clear() {
	for id, ch := range r.channels {
		ch.detach()
		delete(r.channels, id)
	}
}
