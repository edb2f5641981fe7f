// SPDX-License-Identifier: EPL-2.0

package sndcore

import (
	"strconv"

	"github.com/ik5/sndcore/channel"
	"github.com/ik5/sndcore/config"
)

var categoryKeys = map[channel.Type]string{
	channel.Triggered: config.KeyTriggeredGain,
	channel.Ambient:   config.KeyAmbientGain,
	channel.Voice:     config.KeyVoiceGain,
}

type saver interface {
	Save() error
}

func formatGain(g float32) string {
	return strconv.FormatFloat(float64(g), 'g', -1, 32)
}

// SaveSoundSettings writes the master and category gains to the settings
// store. Nothing is written while the device is closed.
func (s *System) SaveSoundSettings() error {
	if !s.IsInitialized() {
		return nil
	}

	s.store.Set(config.SectionSound, config.KeyMasterGain, formatGain(s.gains.MasterGain()))
	for _, t := range channel.Types {
		s.store.Set(config.SectionSound, categoryKeys[t], formatGain(s.gains.CategoryGain(t)))
	}

	if sv, ok := s.store.(saver); ok {
		return sv.Save()
	}

	return nil
}

// LoadSoundSettings restores the gains saved by SaveSoundSettings. Missing
// or unparsable values keep the current gain. Nothing is loaded while the
// device is closed.
func (s *System) LoadSoundSettings() {
	if !s.IsInitialized() {
		return
	}

	if g, ok := s.storedGain(config.KeyMasterGain); ok {
		s.gains.SetMasterGain(g)
	}
	for _, t := range channel.Types {
		if g, ok := s.storedGain(categoryKeys[t]); ok {
			s.gains.SetCategoryGain(t, g)
		}
	}
}

func (s *System) storedGain(key string) (float32, bool) {
	v, ok := s.store.Get(config.SectionSound, key)
	if !ok {
		return 0, false
	}

	g, err := strconv.ParseFloat(v, 32)
	if err != nil {
		s.log.WithField("key", key).WithError(err).Warn("ignoring invalid sound setting")
		return 0, false
	}

	return float32(g), true
}
