// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureFormat_SampleSize(t *testing.T) {
	tests := []struct {
		format   CaptureFormat
		size     int
		channels int
	}{
		{CaptureFormat{}, 1, 1},
		{CaptureFormat{Stereo: true}, 2, 2},
		{CaptureFormat{SixteenBit: true}, 2, 1},
		{CaptureFormat{SixteenBit: true, Stereo: true}, 4, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.format.SampleSize(), "%+v", tt.format)
		assert.Equal(t, tt.channels, tt.format.Channels(), "%+v", tt.format)
	}
}
