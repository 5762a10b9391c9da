package palette

import (
	"errors"
	"runtime"
)

const (
	defaultSize          = 5
	defaultMaxIterations = 300
	defaultWorkerCap     = 8
	maxWorkerCap         = 64
)

// ErrInvalidInputLength is returned when the pixel buffer is not made of whole RGB triplets.
var ErrInvalidInputLength = errors.New("pixel buffer length is not a multiple of 3")

// Options controls a palette extraction.
type Options struct {
	// Size is the requested number of palette colors.
	Size int `json:"size"`
	// Workers bounds the goroutines used for histogram and assignment passes.
	// Results do not depend on it.
	Workers int `json:"workers"`
	// MaxIterations caps the refinement loop.
	MaxIterations int `json:"maxIterations"`
}

// DefaultOptions returns the options used by ExtractPalette.
func DefaultOptions() Options {
	return Options{
		Size:          defaultSize,
		MaxIterations: defaultMaxIterations,
	}.normalized()
}

func (o Options) normalized() Options {
	normalized := o

	if normalized.Size <= 0 {
		normalized.Size = defaultSize
	}
	normalized.Size = clampInt(normalized.Size, 1, HistogramSize)

	if normalized.MaxIterations <= 0 {
		normalized.MaxIterations = defaultMaxIterations
	}

	if normalized.Workers <= 0 {
		normalized.Workers = minInt(runtime.GOMAXPROCS(0), defaultWorkerCap)
	}
	normalized.Workers = clampInt(normalized.Workers, 1, maxWorkerCap)

	return normalized
}

func splitRange(length int, workers int, workerIndex int) (int, int) {
	chunkSize := length / workers
	remainder := length % workers
	start := workerIndex*chunkSize + minInt(workerIndex, remainder)
	end := start + chunkSize
	if workerIndex < remainder {
		end++
	}
	return start, end
}

func clampInt(value int, minimum int, maximum int) int {
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}

func minInt(left int, right int) int {
	if left < right {
		return left
	}
	return right
}
