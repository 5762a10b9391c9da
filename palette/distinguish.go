package palette

import (
	"math"

	"github.com/jkl1337/go-chromath"
	"github.com/jkl1337/go-chromath/deltae"

	"github.com/mmuldo/labpal/colorspace"
)

var klch = &deltae.KLChDefault

// DeltaE returns the CIEDE2000 difference between two colors.
func DeltaE(a, b colorspace.Lab) float64 {
	return deltae.CIE2000(toChromath(a), toChromath(b), klch)
}

// Distinctness returns the smallest CIEDE2000 difference between any two
// swatches, or 0 for palettes of fewer than two colors.
func Distinctness(swatches []Swatch) float64 {
	if len(swatches) < 2 {
		return 0
	}

	smallest := math.Inf(1)
	for i := range swatches {
		for j := i + 1; j < len(swatches); j++ {
			if d := DeltaE(swatches[i].Lab, swatches[j].Lab); d < smallest {
				smallest = d
			}
		}
	}
	return smallest
}

func toChromath(c colorspace.Lab) chromath.Lab {
	return chromath.Lab{float64(c.L), float64(c.A), float64(c.B)}
}
