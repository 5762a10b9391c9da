// Package baseline computes reference palettes with other quantizers so
// labpal's output can be compared against them.
package baseline

import (
	"fmt"
	"image"
	"sort"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/esimov/colorquant"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/mmuldo/labpal/colorspace"
	labimage "github.com/mmuldo/labpal/image"
	"github.com/mmuldo/labpal/palette"
)

// pixels fed to KMeans at most; larger buffers are sampled with a fixed stride
const maxSamples = 20000

// MedianCut quantizes img to num colors and returns the colors with the
// number of pixels mapped to each, most common first.
func MedianCut(img image.Image, num int) []palette.Swatch {
	if num <= 0 || img.Bounds().Empty() {
		return nil
	}

	// quantize image
	b := img.Bounds()
	o := image.NewNRGBA(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y))
	colorquant.NoDither.Quantize(img, o, num, false, true)

	return Frequent(labimage.Pixels(o, 0), num)
}

// Frequent returns the num most frequent exact colors of pixels.
func Frequent(pixels []byte, num int) []palette.Swatch {
	ranked := labimage.RankColors(labimage.GetColors(pixels))
	if len(ranked) > num {
		ranked = ranked[:num]
	}

	swatches := make([]palette.Swatch, len(ranked))
	for i, cc := range ranked {
		swatches[i] = palette.Swatch{
			Color:      cc.Color,
			Lab:        colorspace.RGBToLab(cc.Color),
			Population: cc.Count,
		}
	}
	return swatches
}

type labObservation colorspace.Lab

func (o labObservation) Coordinates() clusters.Coordinates {
	return clusters.Coordinates{float64(o.L), float64(o.A), float64(o.B)}
}

func (o labObservation) Distance(point clusters.Coordinates) float64 {
	return o.Coordinates().Distance(point)
}

// KMeans clusters the Lab values of pixels into at most num colors with a
// plain, randomly seeded k-means. Results vary between runs.
func KMeans(pixels []byte, num int) ([]palette.Swatch, error) {
	count := len(pixels) / 3
	if num <= 0 || count == 0 {
		return nil, nil
	}
	if distinct := len(labimage.GetColors(pixels)); num > distinct {
		num = distinct
	}

	step := 1
	if count > maxSamples {
		step = (count + maxSamples - 1) / maxSamples
	}

	var observations clusters.Observations
	for i := 0; i < count; i += step {
		c := colorspace.RGB{R: pixels[i*3], G: pixels[i*3+1], B: pixels[i*3+2]}
		observations = append(observations, labObservation(colorspace.RGBToLab(c)))
	}
	if num > len(observations) {
		num = len(observations)
	}

	km := kmeans.New()
	partition, err := km.Partition(observations, num)
	if err != nil {
		return nil, fmt.Errorf("k-means baseline: %w", err)
	}

	// kmeans refills empty clusters with points that belong elsewhere, so
	// centers may repeat and memberships may overlap
	var centers []colorspace.Lab
	seen := make(map[colorspace.RGB]bool)
	for _, c := range partition {
		if len(c.Center) < 3 {
			continue
		}
		lab := colorspace.Lab{L: float32(c.Center[0]), A: float32(c.Center[1]), B: float32(c.Center[2])}
		if rgb := colorspace.LabToRGB(lab); !seen[rgb] {
			seen[rgb] = true
			centers = append(centers, lab)
		}
	}

	if len(centers) == 0 {
		return nil, nil
	}

	counts := make([]int, len(centers))
	for _, o := range observations {
		counts[closest(colorspace.Lab(o.(labObservation)), centers)]++
	}

	swatches := make([]palette.Swatch, 0, len(centers))
	for i, lab := range centers {
		if counts[i] == 0 {
			continue
		}
		swatches = append(swatches, palette.Swatch{
			Color:      colorspace.LabToRGB(lab),
			Lab:        lab,
			Population: counts[i] * step,
		})
	}
	byPopulation(swatches)

	return swatches, nil
}

// Prominent extracts num colors from img with prominentcolor's k-means++,
// without its background masks and center cropping.
func Prominent(img image.Image, num int) ([]palette.Swatch, error) {
	if num <= 0 || img.Bounds().Empty() {
		return nil, nil
	}
	if distinct := len(labimage.GetColors(labimage.Pixels(img, 0))); num > distinct {
		num = distinct
	}

	items, err := prominentcolor.KmeansWithAll(num, img, prominentcolor.ArgumentNoCropping, prominentcolor.DefaultSize, nil)
	if err != nil {
		return nil, fmt.Errorf("prominentcolor baseline: %w", err)
	}

	swatches := make([]palette.Swatch, 0, len(items))
	for _, item := range items {
		if item.Cnt == 0 {
			continue
		}
		c := colorspace.RGB{R: uint8(item.Color.R), G: uint8(item.Color.G), B: uint8(item.Color.B)}
		swatches = append(swatches, palette.Swatch{
			Color:      c,
			Lab:        colorspace.RGBToLab(c),
			Population: item.Cnt,
		})
	}
	byPopulation(swatches)

	return swatches, nil
}

func closest(c colorspace.Lab, centers []colorspace.Lab) int {
	best := 0
	for i := 1; i < len(centers); i++ {
		if colorspace.DistanceSquared(c, centers[i]) < colorspace.DistanceSquared(c, centers[best]) {
			best = i
		}
	}
	return best
}

func byPopulation(swatches []palette.Swatch) {
	sort.SliceStable(swatches, func(i, j int) bool {
		return swatches[i].Population > swatches[j].Population
	})
}
