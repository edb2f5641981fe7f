// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore"
	"github.com/ik5/sndcore/formats/wav"
	"github.com/ik5/sndcore/internal/log"
)

var errRecording = errors.New("could not start recording")

func record(ctx context.Context, sys *sndcore.System, args []string) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	out := fs.String("o", "recording.wav", "output WAV file")
	device := fs.String("device", "", "capture device name")
	rate := fs.Int("rate", 44100, "sample rate in Hz")
	stereo := fs.Bool("stereo", false, "record two channels")
	duration := fs.Duration("d", 5*time.Second, "recording length")
	_ = fs.Parse(args)

	channels := 1
	if *stereo {
		channels = 2
	}

	// half a second of capture buffer
	bufferBytes := *rate * 2 * channels / 2
	if !sys.StartRecording(*device, *rate, true, *stereo, bufferBytes) {
		return errRecording
	}
	defer sys.StopRecording()

	l := log.Component("sndplay").WithFields(logrus.Fields{"file": *out, "rate": *rate})
	l.Info("recording")

	var pcm []byte
	chunk := make([]byte, bufferBytes)

	drain := func() {
		for sys.RecordedSoundSize() > 0 {
			n := sys.RecordedSoundData(chunk)
			if n == 0 {
				return
			}
			pcm = append(pcm, chunk[:n]...)
		}
	}

	timer := time.NewTimer(*duration)
	defer timer.Stop()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-timer.C:
			break loop
		case <-ticker.C:
			drain()
		}
	}
	drain()

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[2*i:]))
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	defer f.Close()

	if err := wav.WriteWAV16(f, *rate, channels, samples); err != nil {
		return err
	}

	l.WithField("frames", len(samples)/channels).Info("wrote recording")

	return nil
}
