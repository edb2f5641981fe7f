// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/sndcore/utils"
)

// ResampleToMono16 runs src through a resampler and a mono downmix and
// collects the result as 16-bit PCM at targetRate.
func ResampleToMono16(src Source, targetRate int) ([]int16, error) {
	samples, err := ReadAll(NewMonoMixer(NewResampler(src, targetRate)))
	if err != nil {
		return nil, fmt.Errorf("resampling to mono: %w", err)
	}

	pcm16 := make([]int16, len(samples))
	for i, s := range samples {
		pcm16[i] = utils.Float32ToInt16(s)
	}

	return pcm16, nil
}
