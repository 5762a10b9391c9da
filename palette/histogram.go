package palette

import (
	"sync"

	"github.com/mmuldo/labpal/colorspace"
)

const (
	// HistogramSize is the number of bins: 16 levels per channel.
	HistogramSize = levels * levels * levels

	levels = 16

	// pixels per partial histogram; fixed so that the merge order, and
	// therefore every float sum, is the same for any worker count
	chunkPixels = 1 << 16
)

// Bin aggregates the pixels whose channels fall in the same 16-level cell.
type Bin struct {
	// Sum is the running total of the pixels' Lab values.
	Sum [3]float64
	// Weight is the number of pixels in the bin.
	Weight int
}

// Mean returns the average Lab color of the bin. It must not be called on an empty bin.
func (b *Bin) Mean() colorspace.Lab {
	w := float64(b.Weight)
	return colorspace.Lab{
		L: float32(b.Sum[0] / w),
		A: float32(b.Sum[1] / w),
		B: float32(b.Sum[2] / w),
	}
}

func (b *Bin) add(lab colorspace.Lab) {
	b.Sum[0] += float64(lab.L)
	b.Sum[1] += float64(lab.A)
	b.Sum[2] += float64(lab.B)
	b.Weight++
}

// Histogram is a dense perceptual histogram indexed by BinIndex.
type Histogram [HistogramSize]Bin

// BinIndex returns the histogram cell of an RGB color.
func BinIndex(c colorspace.RGB) int {
	return (int(c.R/levels)*levels+int(c.G/levels))*levels + int(c.B/levels)
}

// BuildHistogram accumulates interleaved RGB8 pixels into a new histogram.
// A trailing partial triplet is ignored.
func BuildHistogram(pixels []byte, workers int) *Histogram {
	h := new(Histogram)

	count := len(pixels) / 3
	chunks := (count + chunkPixels - 1) / chunkPixels
	if chunks == 0 {
		return h
	}
	if workers < 1 {
		workers = 1
	}

	chunk := func(index int) []byte {
		start := index * chunkPixels * 3
		end := minInt(start+chunkPixels*3, count*3)
		return pixels[start:end]
	}

	partials := make([]Histogram, minInt(workers, chunks))
	for base := 0; base < chunks; base += len(partials) {
		batch := minInt(len(partials), chunks-base)

		if batch == 1 {
			partials[0] = Histogram{}
			partials[0].accumulate(chunk(base))
		} else {
			var wg sync.WaitGroup
			for i := 0; i < batch; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					partials[i] = Histogram{}
					partials[i].accumulate(chunk(base + i))
				}(i)
			}
			wg.Wait()
		}

		for i := 0; i < batch; i++ {
			h.merge(&partials[i])
		}
	}

	return h
}

// NonEmpty returns the number of bins holding at least one pixel.
func (h *Histogram) NonEmpty() int {
	n := 0
	for i := range h {
		if h[i].Weight > 0 {
			n++
		}
	}
	return n
}

// Pixels returns the total weight of the histogram.
func (h *Histogram) Pixels() int {
	n := 0
	for i := range h {
		n += h[i].Weight
	}
	return n
}

func (h *Histogram) accumulate(pixels []byte) {
	for i := 0; i+2 < len(pixels); i += 3 {
		c := colorspace.RGB{R: pixels[i], G: pixels[i+1], B: pixels[i+2]}
		h[BinIndex(c)].add(colorspace.RGBToLab(c))
	}
}

func (h *Histogram) merge(other *Histogram) {
	for i := range other {
		if other[i].Weight == 0 {
			continue
		}
		h[i].Sum[0] += other[i].Sum[0]
		h[i].Sum[1] += other[i].Sum[1]
		h[i].Sum[2] += other[i].Sum[2]
		h[i].Weight += other[i].Weight
	}
}
