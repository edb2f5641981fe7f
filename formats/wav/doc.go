// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files on top of github.com/go-audio/wav.
//
// The decoder accepts integer PCM at 8, 16, 24 and 32 bits, any channel count
// and any sample rate, and yields float32 samples in [-1, 1):
//
//	src, err := wav.Decoder{}.Decode(file)
//
// WriteWAV16 writes 16-bit PCM to a seekable writer (chunk sizes are patched
// when the encoder closes). Encode16 does the same into memory:
//
//	data, err := wav.Encode16(44100, 1, samples)
package wav
