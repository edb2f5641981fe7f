// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming primitives used to turn encoded files
// into the decoded assets the engine plays.
//
// A Source yields interleaved float32 samples in [-1, 1] and reports io.EOF
// once drained. Decoders produce Sources and are looked up by file
// extension through a Registry:
//
//	reg := formats.DefaultRegistry()
//	dec, err := reg.Lookup("footstep.ogg")
//	if err != nil {
//		return err
//	}
//	src, err := dec.Decode(f)
//
// Sources chain. Resampler converts the rate with Catmull-Rom
// interpolation, MonoMixer averages channels and ReadAll collects what is
// left into one buffer:
//
//	samples, err := audio.ReadAll(audio.NewResampler(src, 48000))
//
// PCMSource goes the other way and streams an in-memory buffer, which is
// how decoded assets are re-read when they need converting again.
package audio
