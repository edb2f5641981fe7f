// SPDX-License-Identifier: EPL-2.0

package backend

import "sync"

// CaptureRing buffers captured PCM in whole sample frames. Driver callbacks
// write from their own thread while the engine reads, so all access is
// locked. When full the oldest frames are overwritten.
type CaptureRing struct {
	mu        sync.Mutex
	buf       []byte
	frameSize int
	head      int // read offset in bytes
	size      int // buffered bytes
}

func NewCaptureRing(format CaptureFormat) *CaptureRing {
	frames := max(format.BufferFrames, 1)
	frameSize := format.SampleSize()

	return &CaptureRing{
		buf:       make([]byte, frames*frameSize),
		frameSize: frameSize,
	}
}

// Write appends the whole frames of p and returns the buffered frame count.
func (r *CaptureRing) Write(p []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	p = p[:len(p)-len(p)%r.frameSize]
	if len(p) > len(r.buf) {
		p = p[len(p)-len(r.buf):]
	}

	for len(p) > 0 {
		tail := (r.head + r.size) % len(r.buf)
		n := copy(r.buf[tail:], p)
		p = p[n:]

		r.size += n
		if r.size > len(r.buf) {
			drop := r.size - len(r.buf)
			r.head = (r.head + drop) % len(r.buf)
			r.size = len(r.buf)
		}
	}

	return r.size / r.frameSize
}

// Frames returns the number of buffered frames.
func (r *CaptureRing) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.size / r.frameSize
}

// Read moves up to frames frames into dst.
func (r *CaptureRing) Read(dst []byte, frames int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames = min(frames, r.size/r.frameSize, len(dst)/r.frameSize)
	if frames <= 0 {
		return 0
	}

	want := frames * r.frameSize
	for done := 0; done < want; {
		n := copy(dst[done:want], r.buf[r.head:])
		done += n
		r.head = (r.head + n) % len(r.buf)
	}
	r.size -= want

	return frames
}

func (r *CaptureRing) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.head, r.size = 0, 0
}
