// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small sample-level helpers shared by the decoders,
// the resampler and the software mixer.
package utils
