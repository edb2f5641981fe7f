// SPDX-License-Identifier: EPL-2.0

package voice

import (
	"fmt"

	"github.com/pion/opus"
)

const (
	// pion/opus repeats every decoded SILK sample this many times.
	upsampleFactor = 3

	// frameBytes is the most pion writes for one packet: a 320 sample
	// SILK frame, upsampled and stored as 16-bit mono.
	frameBytes = 320 * upsampleFactor * 2
)

// silkFrameMillis are the frame durations of the SILK-only TOC
// configurations, indexed by configuration modulo 4.
var silkFrameMillis = [4]int{10, 20, 40, 60}

// Decoder turns one compressed packet into 16-bit little-endian PCM.
type Decoder interface {
	Decode(packet []byte) (pcm []byte, sampleRate int, stereo bool, err error)
}

// OpusDecoder decodes SILK-only Opus packets with pion/opus.
type OpusDecoder struct {
	dec opus.Decoder
	buf []byte
}

func NewOpusDecoder() *OpusDecoder {
	return &OpusDecoder{
		dec: opus.NewDecoder(),
		buf: make([]byte, frameBytes),
	}
}

// Decode returns a fresh slice holding only the samples of packet; the
// decoder's buffer is reused.
func (d *OpusDecoder) Decode(packet []byte) ([]byte, int, bool, error) {
	bandwidth, stereo, err := d.dec.Decode(packet, d.buf)
	if err != nil {
		return nil, 0, false, fmt.Errorf("decoding opus packet: %w", err)
	}

	rate := bandwidth.SampleRate() * upsampleFactor
	ms := silkFrameMillis[(packet[0]>>3)%4]

	n := rate / 1000 * ms * 2
	if n > len(d.buf) {
		n = len(d.buf)
	}

	pcm := make([]byte, n)
	copy(pcm, d.buf[:n])

	return pcm, rate, stereo, nil
}
