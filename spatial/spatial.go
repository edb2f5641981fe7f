// SPDX-License-Identifier: EPL-2.0

// Package spatial computes listener-relative levels for positional sounds.
package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default distance model parameters for positional sounds.
const (
	DefaultInnerRadius float32 = 1
	DefaultOuterRadius float32 = 50
	DefaultRolloff     float32 = 1
)

var (
	forward = mgl32.Vec3{0, -1, 0}
	upward  = mgl32.Vec3{0, 0, -1}
)

// Listener is the ear of the scene. The zero value sits at the origin with
// the identity orientation.
type Listener struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

func NewListener() Listener {
	return Listener{Orientation: mgl32.QuatIdent()}
}

func (l Listener) orientation() mgl32.Quat {
	if l.Orientation.Len() == 0 {
		return mgl32.QuatIdent()
	}

	return l.Orientation.Normalize()
}

// Front is the direction the listener faces.
func (l Listener) Front() mgl32.Vec3 {
	return l.orientation().Rotate(forward)
}

// Up is the listener's up vector.
func (l Listener) Up() mgl32.Vec3 {
	return l.orientation().Rotate(upward)
}

// Right is Front × Up.
func (l Listener) Right() mgl32.Vec3 {
	return l.Front().Cross(l.Up())
}

// Attenuation maps a distance onto a gain factor in [0, 1]. Inside inner the
// sound is at full level, beyond outer it is silent and in between it falls
// off as (1 - t)^rolloff with t the normalized distance across the band.
func Attenuation(dist, inner, outer, rolloff float32) float32 {
	if dist <= inner {
		return 1
	}
	if dist >= outer {
		return 0
	}

	t := (dist - inner) / (outer - inner)
	if rolloff == 1 {
		return 1 - t
	}

	return float32(math.Pow(float64(1-t), float64(rolloff)))
}

// Pan returns left and right gains for a source at pos. A centered source
// plays at unity on both sides; a source fully to one side mutes the other.
func Pan(l Listener, pos mgl32.Vec3) (left, right float32) {
	return PanAxis(l.Position, l.Right(), pos)
}

// PanAxis is Pan for a listener given by its position and right vector.
func PanAxis(origin, right, pos mgl32.Vec3) (left, rightGain float32) {
	dir := pos.Sub(origin)
	if dir.Len() < 1e-6 || right.Len() == 0 {
		return 1, 1
	}

	p := dir.Normalize().Dot(right.Normalize())

	return min(1, 1-p), min(1, 1+p)
}
