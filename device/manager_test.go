// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sndcore/internal/audiotest"
	"github.com/ik5/sndcore/internal/log"
	"github.com/ik5/sndcore/spatial"
)

var errFake = errors.New("fake failure")

func newManager(b *audiotest.FakeBackend, opts ...Option) *Manager {
	return New(b, append([]Option{WithLogger(log.Discard())}, opts...)...)
}

func TestInitialize(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)

	assert.False(t, m.IsInitialized())
	assert.Nil(t, m.Context())
	assert.Zero(t, m.SampleRate())

	require.True(t, m.Initialize(""))
	assert.True(t, m.IsInitialized())
	assert.NotNil(t, m.Context())
	assert.Equal(t, 44100, m.SampleRate())
	require.Len(t, b.Devices, 1)
	assert.Equal(t, "", b.Devices[0].Name())
}

func TestInitialize_Reinitializes(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)

	require.True(t, m.Initialize(""))
	require.True(t, m.Initialize("Fake Speakers"))

	require.Len(t, b.Devices, 2)
	assert.True(t, b.Devices[0].Closed)
	assert.True(t, b.Contexts[0].Closed)
	assert.False(t, b.Devices[1].Closed)
	assert.Equal(t, "Fake Speakers", b.Devices[1].Name())
}

func TestInitialize_OpenFailure(t *testing.T) {
	b := audiotest.NewFakeBackend()
	b.FailOpen = errFake
	m := newManager(b)

	assert.False(t, m.Initialize("missing"))
	assert.False(t, m.IsInitialized())
	assert.Empty(t, b.Contexts)
}

func TestInitialize_ContextFailureClosesDevice(t *testing.T) {
	b := audiotest.NewFakeBackend()
	b.FailContext = errFake
	m := newManager(b)

	assert.False(t, m.Initialize(""))
	assert.False(t, m.IsInitialized())
	require.Len(t, b.Devices, 1)
	assert.True(t, b.Devices[0].Closed)
}

func TestInitialize_FailureAfterSuccess(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)
	require.True(t, m.Initialize(""))

	b.FailOpen = errFake
	assert.False(t, m.Initialize("other"))
	assert.False(t, m.IsInitialized())
	assert.True(t, b.Devices[0].Closed)
}

func TestUninitialize(t *testing.T) {
	b := audiotest.NewFakeBackend()
	b.CaptureFrames = 10

	var order []string
	m := newManager(b, WithTeardown(func() {
		order = append(order, "teardown")
		assert.Nil(t, b.LastCapture(), "no capture was opened")
	}))
	m.OnTeardown(func() { order = append(order, "second") })

	m.Uninitialize()
	assert.Empty(t, order, "no-op when not initialized")

	require.True(t, m.Initialize(""))
	m.Uninitialize()
	m.Uninitialize()

	assert.Equal(t, []string{"teardown", "second"}, order)
	assert.False(t, m.IsInitialized())
	assert.True(t, b.Contexts[0].Closed)
	assert.True(t, b.Devices[0].Closed)
}

func TestUninitialize_StopsRecording(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)
	require.True(t, m.Initialize(""))
	require.True(t, m.StartRecording("", 8000, true, false, 1024))

	m.Uninitialize()

	assert.False(t, m.Recording())
	assert.True(t, b.LastCapture().Closed)
}

func TestDevices(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)

	assert.Equal(t, []string{"Fake Speakers"}, m.PlaybackDevices())
	assert.Equal(t, []string{"Fake Microphone"}, m.RecordingDevices())

	b.FailEnumerate = errFake
	assert.Empty(t, m.PlaybackDevices())
	assert.NotNil(t, m.RecordingDevices())

	b.FailEnumerate = nil
	b.Playback = nil
	assert.NotNil(t, m.PlaybackDevices())
}

func TestSetListener(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)

	l := spatial.Listener{Position: mgl32.Vec3{1, 2, 3}, Orientation: mgl32.QuatIdent()}
	m.SetListener(l)

	require.True(t, m.Initialize(""))
	m.SetListener(l)

	ctx := b.LastContext()
	assert.Equal(t, 1, ctx.ListenerUpdates)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, ctx.ListenerPos)
	assert.Equal(t, l.Front(), ctx.ListenerFront)
	assert.Equal(t, l.Up(), ctx.ListenerUp)
}

func TestStartRecording_RequiresInitialize(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)

	assert.False(t, m.StartRecording("", 44100, true, false, 4096))
	assert.Empty(t, b.Captures)
	assert.Zero(t, m.RecordedSoundSize())
	assert.Zero(t, m.RecordedSoundData(make([]byte, 16)))
}

func TestStartRecording_Failure(t *testing.T) {
	b := audiotest.NewFakeBackend()
	b.FailCapture = errFake
	m := newManager(b)
	require.True(t, m.Initialize(""))

	assert.False(t, m.StartRecording("", 44100, true, false, 4096))
	assert.False(t, m.Recording())
}

func TestStartRecording_Format(t *testing.T) {
	tests := []struct {
		name       string
		sixteenBit bool
		stereo     bool
		sampleSize int
	}{
		{"8-bit mono", false, false, 1},
		{"8-bit stereo", false, true, 2},
		{"16-bit mono", true, false, 2},
		{"16-bit stereo", true, true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := audiotest.NewFakeBackend()
			b.CaptureFrames = 100
			m := newManager(b)
			require.True(t, m.Initialize(""))

			require.True(t, m.StartRecording("mic", 22050, tt.sixteenBit, tt.stereo, 4096))

			c := b.LastCapture()
			assert.True(t, c.Started)
			assert.Equal(t, "mic", c.Name)
			assert.Equal(t, 22050, c.Format.Frequency)
			assert.Equal(t, 4096/tt.sampleSize, c.Format.BufferFrames)
			assert.Equal(t, 100*tt.sampleSize, m.RecordedSoundSize())
		})
	}
}

func TestStartRecording_ReplacesCapture(t *testing.T) {
	b := audiotest.NewFakeBackend()
	m := newManager(b)
	require.True(t, m.Initialize(""))

	require.True(t, m.StartRecording("", 8000, false, false, 512))
	first := b.LastCapture()
	require.True(t, m.StartRecording("", 8000, false, false, 512))

	assert.True(t, first.Closed)
	assert.Len(t, b.Captures, 2)

	m.StopRecording()
	m.StopRecording()
	assert.True(t, b.LastCapture().Closed)
}

func TestRecordedSoundData_Clamps(t *testing.T) {
	b := audiotest.NewFakeBackend()
	b.CaptureFrames = 100
	m := newManager(b)
	require.True(t, m.Initialize(""))
	require.True(t, m.StartRecording("", 44100, true, false, 4096))

	size := m.RecordedSoundSize()
	assert.LessOrEqual(t, size, b.LastCapture().Available()*2)
	assert.Equal(t, 200, size)

	buf := make([]byte, 1000)
	assert.Equal(t, 200, m.RecordedSoundData(buf))
	assert.Zero(t, m.RecordedSoundSize())

	b.LastCapture().Frames = 50
	assert.Equal(t, 20, m.RecordedSoundData(make([]byte, 21)), "whole frames only")
	assert.Equal(t, 80, m.RecordedSoundSize())
}
