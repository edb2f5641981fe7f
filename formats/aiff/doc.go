// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Signed PCM at 8, 16, 24 and 32 bits is accepted. Readers that cannot seek
// are buffered into memory first, since go-audio walks the chunk list.
package aiff
