// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ik5/sndcore/audio"
	"github.com/ik5/sndcore/formats"
	"github.com/ik5/sndcore/formats/wav"
	"github.com/ik5/sndcore/internal/log"
)

// convert resamples a file to mono 16-bit WAV.
func convert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	rate := fs.Int("rate", 8000, "output sample rate in Hz")
	_ = fs.Parse(args)

	if fs.NArg() != 2 {
		return fmt.Errorf("convert needs an input and an output file")
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	dec, err := formats.DefaultRegistry().Lookup(inPath)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}
	defer src.Close()

	pcm16, err := audio.ResampleToMono16(src, *rate)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	if err := wav.WriteWAV16(out, *rate, 1, pcm16); err != nil {
		return err
	}

	log.Component("sndplay").WithField("file", outPath).Info("converted")

	return nil
}
