// SPDX-License-Identifier: EPL-2.0

package null

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/backend"
)

func TestBackend_Devices(t *testing.T) {
	b := New(8000)

	names, err := b.PlaybackDevices()
	require.NoError(t, err)
	assert.Equal(t, []string{DeviceName}, names)

	names, err = b.CaptureDevices()
	require.NoError(t, err)
	assert.Equal(t, []string{DeviceName}, names)

	dev, err := b.OpenDevice("")
	require.NoError(t, err)
	assert.Equal(t, DeviceName, dev.Name())

	dev, err = b.OpenDevice("Speakers")
	require.NoError(t, err)
	assert.Equal(t, "Speakers", dev.Name())
	assert.NoError(t, dev.Close())
}

func TestBackend_PlaybackFinishes(t *testing.T) {
	b := New(8000).WithPeriod(time.Millisecond)

	dev, err := b.OpenDevice("")
	require.NoError(t, err)
	defer dev.Close()

	ctx, err := dev.CreateContext()
	require.NoError(t, err)
	defer ctx.Close()
	assert.Equal(t, 8000, ctx.SampleRate())

	// 20ms of audio
	a, err := asset.New("blip", make([]float32, 160), 8000, 1)
	require.NoError(t, err)

	v, err := ctx.NewVoice()
	require.NoError(t, err)
	require.NoError(t, v.Queue(a))
	v.Play()

	assert.Eventually(t, func() bool { return !v.Playing() }, 2*time.Second, 5*time.Millisecond)
}

func TestBackend_ContextCloseTwice(t *testing.T) {
	dev, err := New(8000).OpenDevice("")
	require.NoError(t, err)

	ctx, err := dev.CreateContext()
	require.NoError(t, err)

	assert.NoError(t, ctx.Close())
	assert.NoError(t, ctx.Close())
}

func TestBackend_Capture(t *testing.T) {
	b := New(8000).WithPeriod(time.Millisecond)

	_, err := b.OpenCapture("", backend.CaptureFormat{})
	assert.ErrorIs(t, err, backend.ErrInvalidFormat)

	format := backend.CaptureFormat{Frequency: 8000, BufferFrames: 64}
	c, err := b.OpenCapture("", format)
	require.NoError(t, err)
	defer c.Close()

	assert.Zero(t, c.Available())
	require.NoError(t, c.Start())
	require.NoError(t, c.Start())

	assert.Eventually(t, func() bool { return c.Available() > 0 }, 2*time.Second, time.Millisecond)
	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())

	avail := c.Available()
	assert.LessOrEqual(t, avail, 64)

	buf := make([]byte, avail*format.SampleSize())
	assert.Equal(t, avail, c.Read(buf, avail))
	for _, s := range buf {
		require.Equal(t, byte(128), s)
	}
}
