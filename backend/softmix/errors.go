// SPDX-License-Identifier: EPL-2.0

package softmix

import "errors"

var ErrInvalidAsset = errors.New("asset holds no playable frames")
