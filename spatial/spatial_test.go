// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()

	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d", i)
	}
}

func TestListener_Axes(t *testing.T) {
	for _, l := range []Listener{{}, NewListener()} {
		assertVec(t, mgl32.Vec3{0, -1, 0}, l.Front())
		assertVec(t, mgl32.Vec3{0, 0, -1}, l.Up())
		assertVec(t, mgl32.Vec3{1, 0, 0}, l.Right())
	}
}

func TestListener_Rotated(t *testing.T) {
	// quarter turn about the up axis
	l := Listener{Orientation: mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})}

	assertVec(t, mgl32.Vec3{1, 0, 0}, l.Front())
	assertVec(t, mgl32.Vec3{0, 0, -1}, l.Up())
}

func TestAttenuation(t *testing.T) {
	tests := []struct {
		name               string
		dist, inner, outer float32
		rolloff, want      float32
	}{
		{"inside inner", 0.5, 1, 50, 1, 1},
		{"at inner", 1, 1, 50, 1, 1},
		{"at outer", 50, 1, 50, 1, 0},
		{"beyond outer", 80, 1, 50, 1, 0},
		{"linear midpoint", 25.5, 1, 50, 1, 0.5},
		{"squared midpoint", 25.5, 1, 50, 2, 0.25},
		{"half rolloff", 7.75, 1, 10, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Attenuation(tt.dist, tt.inner, tt.outer, tt.rolloff), 1e-5)
		})
	}
}

func TestAttenuation_Monotonic(t *testing.T) {
	prev := float32(1)
	for d := float32(0); d < 60; d += 0.5 {
		g := Attenuation(d, DefaultInnerRadius, DefaultOuterRadius, DefaultRolloff)
		assert.LessOrEqual(t, g, prev)
		prev = g
	}
}

func TestPan(t *testing.T) {
	l := NewListener()

	left, right := Pan(l, mgl32.Vec3{})
	assert.Equal(t, float32(1), left)
	assert.Equal(t, float32(1), right)

	left, right = Pan(l, mgl32.Vec3{0, -5, 0})
	assert.InDelta(t, 1, left, 1e-5)
	assert.InDelta(t, 1, right, 1e-5)

	left, right = Pan(l, mgl32.Vec3{3, 0, 0})
	assert.InDelta(t, 0, left, 1e-5)
	assert.InDelta(t, 1, right, 1e-5)

	left, right = Pan(l, mgl32.Vec3{-3, 0, 0})
	assert.InDelta(t, 1, left, 1e-5)
	assert.InDelta(t, 0, right, 1e-5)
}

func TestPanAxis_DegenerateRight(t *testing.T) {
	left, right := PanAxis(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{4, 0, 0})
	assert.Equal(t, float32(1), left)
	assert.Equal(t, float32(1), right)
}
