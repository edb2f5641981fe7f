// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Float32ToInt16 clamps x to [-1, 1] and scales it to a signed 16-bit sample.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x, -1, 1)

	// 32767 for the positive peak so 1.0 does not wrap
	return int16(x * 32767.0)
}

// Int16ToFloat32 maps a signed 16-bit sample into [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Uint8ToFloat32 maps an unsigned 8-bit sample (silence at 128) into [-1, 1).
func Uint8ToFloat32(v uint8) float32 {
	return (float32(v) - 128.0) / 128.0
}

// Float32ToUint8 is the inverse of Uint8ToFloat32 with clamping.
func Float32ToUint8(x float32) uint8 {
	x = Clamp(x, -1, 1)
	return uint8(x*127.0 + 128.0)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// PCM16LEToFloat32 converts little-endian signed 16-bit bytes into dst and
// returns the number of samples written. A trailing odd byte is ignored.
func PCM16LEToFloat32(dst []float32, src []byte) int {
	n := min(len(src)/2, len(dst))
	for i := range n {
		dst[i] = Int16ToFloat32(int16(binary.LittleEndian.Uint16(src[2*i:])))
	}

	return n
}

// PCM8ToFloat32 converts unsigned 8-bit bytes into dst and returns the number
// of samples written.
func PCM8ToFloat32(dst []float32, src []byte) int {
	n := min(len(src), len(dst))
	for i := range n {
		dst[i] = Uint8ToFloat32(src[i])
	}

	return n
}
