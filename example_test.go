// SPDX-License-Identifier: EPL-2.0

package sndcore_test

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/sndcore"
	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/channel"
	"github.com/ik5/sndcore/config"
	"github.com/ik5/sndcore/internal/audiotest"
	"github.com/ik5/sndcore/internal/log"
)

// Example_positionalSound plays a sound four units to the side of the
// listener and lets it finish.
func Example_positionalSound() {
	b := audiotest.NewFakeBackend()
	sys, err := sndcore.New(config.DefaultConfig(),
		sndcore.WithBackend(b),
		sndcore.WithStore(config.NewMemoryStore()),
		sndcore.WithLogger(log.Discard()),
	)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer sys.Close()

	// 100ms of silence at the device rate
	a, _ := asset.New("click", make([]float32, 4410), 44100, 1)

	ch := sys.PlaySound3D(mgl32.Vec3{4, 0, 0}, a, channel.Triggered, nil)
	sys.Update(16 * time.Millisecond)

	fmt.Printf("Channel %d is %s\n", ch.ID(), ch.State())
	fmt.Printf("Attenuation: %.2f\n", ch.Attenuation())
	fmt.Printf("Active sounds: %d\n", len(sys.ActiveSounds()))

	// the device reports that playback ran out
	b.LastContext().Voices[0].Finish()
	sys.Update(16 * time.Millisecond)

	fmt.Printf("Active sounds: %d\n", len(sys.ActiveSounds()))
	// Output:
	// Channel 1 is playing
	// Attenuation: 0.94
	// Active sounds: 1
	// Active sounds: 0
}

// Example_categoryGain shows how master and category gains combine.
func Example_categoryGain() {
	sys, err := sndcore.New(config.DefaultConfig(),
		sndcore.WithBackend(audiotest.NewFakeBackend()),
		sndcore.WithStore(config.NewMemoryStore()),
		sndcore.WithLogger(log.Discard()),
	)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	defer sys.Close()

	a, _ := asset.New("wind", make([]float32, 4410), 44100, 1)
	ch := sys.PlaySound(a, channel.Ambient, nil)

	sys.SetMasterGain(0.5)
	sys.SetSoundMasterGain(channel.Ambient, 0.5)

	fmt.Printf("Ambient gain: %.2f\n", ch.MasterGain())
	fmt.Printf("Triggered category gain: %.2f\n", sys.SoundMasterGain(channel.Triggered))
	// Output:
	// Ambient gain: 0.25
	// Triggered category gain: 1.00
}
