// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/ik5/sndcore"
)

func devices(sys *sndcore.System) error {
	fmt.Println("playback:")
	for _, name := range sys.PlaybackDevices() {
		fmt.Println("  " + name)
	}

	fmt.Println("capture:")
	for _, name := range sys.RecordingDevices() {
		fmt.Println("  " + name)
	}

	return nil
}
