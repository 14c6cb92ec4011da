// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// wayverb-bench runs the named spec.md §8 scenarios and prints their
// measured RT60 and per-stage timings. Structured the way the teacher's eg
// package dispatches named examples by tag (eg/eg.go): invoking the binary
// without arguments lists the runnable scenarios.
package main

import (
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wayverb/core/engine"
)

func main() {
	scenarios := []scenario{
		{"s1", "S1: free-space direct sound", runS1},
		{"s2", "S2: 1D corridor comb filter", runS2},
		{"s3", "S3: absorbing shoebox RT60", runS3},
	}

	p := message.NewPrinter(language.English)

	for _, arg := range os.Args[1:] {
		for _, sc := range scenarios {
			if arg == sc.tag {
				runScenario(p, sc)
				return
			}
		}
	}

	p.Printf("Usage: wayverb-bench [scenario]\n")
	p.Printf("Scenarios are:\n")
	for _, sc := range scenarios {
		p.Printf("  %s\n", sc.description)
	}
}

func runScenario(p *message.Printer, sc scenario) {
	r, err := sc.function()
	if err != nil {
		p.Printf("%s: error: %v\n", sc.tag, err)
		os.Exit(1)
	}

	p.Printf("%s\n", sc.description)
	if r.peakSample > 0 {
		p.Printf("  peak sample: %d (%.4fs)\n", r.peakSample, r.peakSeconds)
	}
	if len(r.combSeconds) > 0 {
		p.Printf("  comb arrivals (s):")
		for _, t := range r.combSeconds {
			p.Printf(" %.4f", t)
		}
		p.Printf("\n")
	}
	if r.rt60Analytic > 0 {
		p.Printf("  RT60 analytic: %.3fs, measured: %.3fs\n", r.rt60Analytic, r.rt60Measured)
	}
	for _, s := range []engine.State{engine.Initialising, engine.RayTracing, engine.Waveguide, engine.Postprocessing} {
		if d, ok := r.times[s]; ok {
			p.Printf("  %-14s %.3fs\n", s, d)
		}
	}
}
