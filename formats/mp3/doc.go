// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams with github.com/hajimehoshi/go-mp3.
//
// The decoder always produces interleaved stereo; mono files are duplicated
// to both channels by go-mp3 itself.
package mp3
