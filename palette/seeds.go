package palette

import (
	"github.com/chewxy/math32"

	"github.com/mmuldo/labpal/colorspace"
)

// separation sets how far from a chosen seed a bin must be before its
// ranking weight is left mostly intact. Tuned, not derived.
const separation = 3650.0

// SelectSeeds picks up to size well separated colors by weighted
// farthest-point sampling over the histogram. Seeds are returned in
// selection order. Fewer than size seeds are returned when the ranking
// weights run out.
func SelectSeeds(h *Histogram, size int) []colorspace.Lab {
	if size <= 0 {
		return nil
	}

	var (
		weights [HistogramSize]float32
		means   [HistogramSize]colorspace.Lab
	)
	for i := range h {
		if h[i].Weight == 0 {
			continue
		}
		weights[i] = float32(h[i].Weight)
		means[i] = h[i].Mean()
	}

	seeds := make([]colorspace.Lab, 0, minInt(size, HistogramSize))
	for len(seeds) < size {
		best := 0
		for i := range weights {
			if weights[i] >= weights[best] {
				best = i
			}
		}
		if weights[best] == 0 {
			break
		}

		seed := means[best]
		weights[best] = 0
		seeds = append(seeds, seed)

		attenuate(&weights, h, &means, seed)
	}

	return seeds
}

// attenuate scales down the ranking weight of every bin close to seed.
func attenuate(weights *[HistogramSize]float32, h *Histogram, means *[HistogramSize]colorspace.Lab, seed colorspace.Lab) {
	for i := range h {
		if h[i].Weight == 0 {
			continue
		}
		d2 := colorspace.DistanceSquared(seed, means[i])
		weights[i] *= 1 - math32.Exp(-d2/separation)
	}
}
