// SPDX-License-Identifier: EPL-2.0

// Package softmix is a software voice mixer. Drivers that only accept a
// single PCM stream pull interleaved stereo float32 from a Mixer, which
// implements backend.Context on top of it.
package softmix

import (
	"encoding/binary"
	"math"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ik5/sndcore/asset"
	"github.com/ik5/sndcore/backend"
	"github.com/ik5/sndcore/spatial"
	"github.com/ik5/sndcore/utils"
)

// Channels is the output channel count of every Mixer.
const Channels = 2

// Mixer renders all playing voices. Render and Read run on driver threads,
// everything else on the engine thread; a single mutex serializes both.
type Mixer struct {
	mu     sync.Mutex
	rate   int
	voices []*voice
	closed bool

	listenerPos   mgl32.Vec3
	listenerRight mgl32.Vec3

	scratch []float32
}

var _ backend.Context = (*Mixer)(nil)

func New(sampleRate int) *Mixer {
	l := spatial.NewListener()

	return &Mixer{
		rate:          sampleRate,
		listenerPos:   l.Position,
		listenerRight: l.Right(),
	}
}

func (m *Mixer) SampleRate() int { return m.rate }

func (m *Mixer) NewVoice() (backend.Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, backend.ErrClosed
	}

	v := &voice{m: m, gain: 1, pitch: 1}
	m.voices = append(m.voices, v)

	return v, nil
}

func (m *Mixer) SetListener(pos, front, up mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listenerPos = pos
	m.listenerRight = front.Cross(up)
}

// Voices returns the number of open voices.
func (m *Mixer) Voices() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.voices)
}

// Close stops and detaches every voice. Voices handed out earlier stay
// safe to call but no longer produce sound.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, v := range m.voices {
		v.reset()
		v.closed = true
	}
	m.voices = nil
	m.closed = true

	return nil
}

// Render mixes len(dst)/Channels frames into dst, overwriting it.
func (m *Mixer) Render(dst []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(dst)

	frames := len(dst) / Channels
	for _, v := range m.voices {
		if v.playing {
			m.renderVoice(v, dst, frames)
		}
	}

	for i := range dst {
		dst[i] = utils.Clamp(dst[i], -1, 1)
	}
}

// Read renders float32 little-endian stereo into p, so a Mixer can feed
// byte oriented players directly. It never returns an error.
func (m *Mixer) Read(p []byte) (int, error) {
	samples := len(p) / 4
	if cap(m.scratch) < samples {
		m.scratch = make([]float32, samples)
	}
	buf := m.scratch[:samples]

	m.Render(buf[:samples-samples%Channels])
	if samples%Channels != 0 {
		buf[samples-1] = 0
	}

	for i, s := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	clear(p[4*samples:])

	return len(p), nil
}

func (m *Mixer) renderVoice(v *voice, dst []float32, frames int) {
	for i := 0; i < frames && v.playing; {
		a := v.queue[0]
		total := a.Frames()

		idx := int(v.pos)
		if idx >= total {
			v.next(total)
			continue
		}

		left, right := float32(1), float32(1)
		if v.positional && a.Channels() == 1 {
			left, right = spatial.PanAxis(m.listenerPos, m.listenerRight, v.position)
		}

		samples := a.Samples()
		ch := a.Channels()
		step := float64(a.SampleRate()) / float64(m.rate) * float64(v.pitch)

		for ; i < frames && int(v.pos) < total; i++ {
			idx = int(v.pos)
			x := float32(v.pos - float64(idx))

			l := interpolate(samples, ch, 0, idx, total, x)
			r := l
			if ch > 1 {
				r = interpolate(samples, ch, 1, idx, total, x)
			}

			dst[Channels*i] += l * left * v.gain
			dst[Channels*i+1] += r * right * v.gain
			v.pos += step
		}
	}
}

func interpolate(samples []float32, channels, c, idx, total int, x float32) float32 {
	at := func(k int) float32 {
		k = min(max(k, 0), total-1)
		return samples[k*channels+c]
	}

	return utils.CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), x)
}

// voice is one mixer input. Its fields are guarded by the mixer mutex.
type voice struct {
	m *Mixer

	queue   []*asset.Asset
	pos     float64 // frame offset into queue[0]
	playing bool
	closed  bool

	gain       float32
	pitch      float32
	looped     bool
	positional bool
	position   mgl32.Vec3
}

// next is called once the current asset is exhausted.
func (v *voice) next(total int) {
	if v.looped && len(v.queue) == 1 {
		v.pos -= float64(total)
		return
	}

	v.queue = v.queue[1:]
	v.pos = 0
	if len(v.queue) == 0 {
		v.playing = false
	}
}

func (v *voice) reset() {
	v.queue = nil
	v.pos = 0
	v.playing = false
}

func (v *voice) Queue(a *asset.Asset) error {
	if !a.Valid() {
		return ErrInvalidAsset
	}

	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if v.closed {
		return backend.ErrClosed
	}

	v.queue = append(v.queue, a)

	return nil
}

func (v *voice) Play() {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if !v.closed && len(v.queue) > 0 {
		v.playing = true
	}
}

func (v *voice) Stop() {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	v.reset()
}

func (v *voice) Playing() bool {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	return v.playing
}

func (v *voice) Queued() int {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	return len(v.queue)
}

func (v *voice) SetGain(g float32) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	v.gain = g
}

func (v *voice) SetPitch(p float32) {
	if p <= 0 {
		return
	}

	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	v.pitch = p
}

func (v *voice) SetLooped(looped bool) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	v.looped = looped
}

func (v *voice) SetPosition(positional bool, pos mgl32.Vec3) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	v.positional = positional
	v.position = pos
}

func (v *voice) Close() error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()

	if v.closed {
		return nil
	}

	v.reset()
	v.closed = true
	v.m.voices = slices.DeleteFunc(v.m.voices, func(o *voice) bool { return o == v })

	return nil
}
