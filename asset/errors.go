// SPDX-License-Identifier: EPL-2.0

package asset

import "errors"

var (
	ErrInvalidLayout = errors.New("sample rate and channel count must be positive")
	ErrEmptyBuffer   = errors.New("sound buffer holds no complete frame")
)
