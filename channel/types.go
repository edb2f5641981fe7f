// SPDX-License-Identifier: EPL-2.0

package channel

import "fmt"

// Type is the gain category of a channel.
type Type int

const (
	Triggered Type = iota
	Ambient
	Voice
)

// Types lists every category.
var Types = []Type{Triggered, Ambient, Voice}

func (t Type) String() string {
	switch t {
	case Triggered:
		return "triggered"
	case Ambient:
		return "ambient"
	case Voice:
		return "voice"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// State is the playback state of a channel.
type State int

const (
	Stopped State = iota
	Pending
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Pending:
		return "pending"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ID identifies a channel. Zero is never assigned.
type ID uint32

const InvalidID ID = 0
