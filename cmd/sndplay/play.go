// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore"
	"github.com/ik5/sndcore/channel"
	"github.com/ik5/sndcore/internal/log"
)

const frameTime = 16 * time.Millisecond

var errNotInitialized = errors.New("no playback device")

func parseVec3(s string) (mgl32.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("position %q: want x,y,z", s)
	}

	var v mgl32.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("position %q: %w", s, err)
		}
		v[i] = float32(f)
	}

	return v, nil
}

func play(ctx context.Context, sys *sndcore.System, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	pos := fs.String("pos", "", "play positionally at x,y,z")
	gain := fs.Float64("gain", 1, "master gain")
	loop := fs.Bool("loop", false, "loop until interrupted")
	_ = fs.Parse(args)

	if !sys.IsInitialized() {
		return errNotInitialized
	}

	sys.SetMasterGain(float32(*gain))

	var where *mgl32.Vec3
	if *pos != "" {
		v, err := parseVec3(*pos)
		if err != nil {
			return err
		}
		where = &v
	}

	l := log.Component("sndplay")
	for _, path := range fs.Args() {
		a, err := sys.LoadAsset(path)
		if err != nil {
			return err
		}

		var ch *channel.Channel
		if where != nil {
			ch = sys.PlaySound3D(*where, a, channel.Triggered, nil)
		} else {
			ch = sys.PlaySound(a, channel.Triggered, nil)
		}
		ch.SetLooped(*loop)

		l.WithFields(logrus.Fields{
			"file":     path,
			"channel":  ch.ID(),
			"duration": a.Duration(),
		}).Info("playing")
	}

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for len(sys.ActiveSounds()) > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sys.Update(frameTime)
		}
	}

	return nil
}
