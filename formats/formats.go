// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/formats/aiff"
	"github.com/ik5/sndcore/formats/mp3"
	"github.com/ik5/sndcore/formats/vorbis"
	"github.com/ik5/sndcore/formats/wav"
)

// Register adds the bundled decoders to reg under their file extensions.
func Register(reg *audio.Registry) {
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
}

// DefaultRegistry returns a registry holding every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	Register(reg)

	return reg
}
