// Package palette extracts a small representative palette from RGB8 pixels.
//
// Pixels are binned into a 4096-cell histogram of CIELAB sums, seed colors are
// chosen by weighted farthest-point sampling, and the seeds are refined with a
// histogram-weighted k-means in Lab space.
package palette

import (
	"fmt"

	"github.com/mmuldo/labpal/colorspace"
)

// Swatch is one palette entry.
type Swatch struct {
	Color colorspace.RGB `json:"color"`
	Lab   colorspace.Lab `json:"lab"`
	// Population is the number of pixels in the swatch's cluster.
	Population int `json:"population"`
}

// Result holds an extracted palette and how its refinement went.
type Result struct {
	Swatches   []Swatch `json:"swatches"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Options    Options  `json:"options"`
}

// Colors returns the RGB colors of the palette in order.
func (r Result) Colors() []colorspace.RGB {
	colors := make([]colorspace.RGB, len(r.Swatches))
	for i, s := range r.Swatches {
		colors[i] = s.Color
	}
	return colors
}

// ExtractPalette returns up to five colors summarizing pixels, an
// interleaved RGB8 buffer.
func ExtractPalette(pixels []byte) ([]colorspace.RGB, error) {
	result, err := Extract(pixels, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return result.Colors(), nil
}

// Extract runs the full pipeline on pixels, an interleaved RGB8 buffer.
// Empty input yields an empty palette.
func Extract(pixels []byte, options Options) (Result, error) {
	if len(pixels)%3 != 0 {
		return Result{}, fmt.Errorf("extract palette from %d bytes: %w", len(pixels), ErrInvalidInputLength)
	}

	normalized := options.normalized()

	histogram := BuildHistogram(pixels, normalized.Workers)
	seeds := SelectSeeds(histogram, normalized.Size)
	refined := Refine(histogram, seeds, normalized.MaxIterations, normalized.Workers)

	swatches := make([]Swatch, len(refined.Clusters))
	for i, cluster := range refined.Clusters {
		swatches[i] = Swatch{
			Color:      colorspace.LabToRGB(cluster.Centroid),
			Lab:        cluster.Centroid,
			Population: cluster.Weight,
		}
	}

	return Result{
		Swatches:   swatches,
		Iterations: refined.Iterations,
		Converged:  refined.Converged,
		Options:    normalized,
	}, nil
}

// Flatten packs colors into a 3*len(colors) byte buffer.
func Flatten(colors []colorspace.RGB) []byte {
	out := make([]byte, 0, len(colors)*3)
	for _, c := range colors {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}
