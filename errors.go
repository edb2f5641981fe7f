// SPDX-License-Identifier: EPL-2.0

package sndcore

import "errors"

var ErrUnknownFormat = errors.New("no decoder for format")
