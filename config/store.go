// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// SectionSound is the namespace holding the gain settings.
const SectionSound = "sound"

// Keys of the persisted gain settings.
const (
	KeyMasterGain    = "master_gain"
	KeyTriggeredGain = "triggered_sound_gain"
	KeyAmbientGain   = "ambient_sound_gain"
	KeyVoiceGain     = "voice_sound_gain"
)

// Store is a sectioned string key/value store.
type Store interface {
	Get(section, key string) (string, bool)
	Set(section, key, value string)
}

// MemoryStore is a Store kept in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]string)}
}

func (m *MemoryStore) Get(section, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[section][key]
	return v, ok
}

func (m *MemoryStore) Set(section, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sec, ok := m.data[section]
	if !ok {
		sec = make(map[string]string)
		m.data[section] = sec
	}
	sec[key] = value
}

// FileStore is a MemoryStore persisted as YAML (section -> key -> value).
type FileStore struct {
	*MemoryStore
	path string
}

// OpenFileStore loads path if it exists; a missing file yields an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{MemoryStore: NewMemoryStore(), path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &fs.data); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if fs.data == nil {
		fs.data = make(map[string]map[string]string)
	}

	return fs, nil
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

// Save writes the store back to its file.
func (f *FileStore) Save() error {
	f.mu.Lock()
	data, err := yaml.Marshal(f.data)
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}

	return nil
}
