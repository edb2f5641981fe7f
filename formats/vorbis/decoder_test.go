// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type fakeOgg struct {
	channels int
	samples  []float32
	err      error
}

func (f *fakeOgg) SampleRate() int { return 48000 }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.samples)
	f.samples = f.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("OggS but not really"))); err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestSource_WholeFrames(t *testing.T) {
	t.Parallel()

	src := &source{dec: &fakeOgg{channels: 2, samples: []float32{0.1, 0.2, 0.3, 0.4}}, channels: 2}

	buf := make([]float32, 3) // room for one stereo frame only
	n, err := src.ReadSamples(buf)
	if n != 2 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v; want 2, nil", n, err)
	}

	if n, _ := src.ReadSamples(buf[:1]); n != 0 {
		t.Errorf("ReadSamples() with sub-frame dst = %d, want 0", n)
	}

	n, _ = src.ReadSamples(buf)
	if n != 2 || buf[0] != 0.3 {
		t.Errorf("second frame = %d samples starting %v", n, buf[0])
	}

	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("drained ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad page")
	src := &source{dec: &fakeOgg{channels: 1, err: boom}, channels: 1}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
}
