// SPDX-License-Identifier: EPL-2.0

package backend

import "errors"

var (
	ErrUnsupported    = errors.New("not supported by this backend")
	ErrDeviceNotFound = errors.New("device not found")
	ErrClosed         = errors.New("already closed")
	ErrInvalidFormat  = errors.New("invalid capture format")
)
