// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("no decoder registered for format")
	ErrInvalidLayout  = errors.New("sample rate and channel count must be positive")
)
