// SPDX-License-Identifier: EPL-2.0

package sndcore

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/config"
)

type Option func(*System)

// WithBackend uses b instead of the backend named by the configuration.
func WithBackend(b backend.Backend) Option {
	return func(s *System) { s.backend = b }
}

// WithStore persists sound settings in st instead of the configured file.
func WithStore(st config.Store) Option {
	return func(s *System) { s.store = st }
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *System) { s.log = l }
}

// WithDecoders replaces the default decoder registry.
func WithDecoders(reg *audio.Registry) Option {
	return func(s *System) { s.decoders = reg }
}
