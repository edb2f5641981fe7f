// SPDX-License-Identifier: EPL-2.0

package sndcore

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/backend/miniaudio"
	nullbackend "github.com/ik5/sndcore/backend/null"
	"github.com/ik5/sndcore/backend/otoaudio"
	"github.com/ik5/sndcore/config"
)

// OpenBackend builds the backend named by cfg.Backend.
func OpenBackend(cfg config.Config, l *logrus.Entry) (backend.Backend, error) {
	frames := cfg.BufferFrames()

	switch cfg.Backend {
	case config.BackendNull:
		return nullbackend.New(cfg.SampleRate), nil
	case config.BackendOto:
		return otoaudio.New(cfg.SampleRate, frames), nil
	case config.BackendMiniaudio:
		return miniaudio.New(cfg.SampleRate, frames), nil
	case config.BackendAuto, "":
		mb := miniaudio.New(cfg.SampleRate, frames)
		if _, err := mb.PlaybackDevices(); err != nil {
			l.WithError(err).Info("miniaudio unavailable, using oto")
			return otoaudio.New(cfg.SampleRate, frames), nil
		}
		return mb, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
