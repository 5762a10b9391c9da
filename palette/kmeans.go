package palette

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/mmuldo/labpal/colorspace"
)

// bins per assignment goroutine below which the pass stays on one goroutine
const minParallelBins = 256

// Cluster is a refined palette color.
type Cluster struct {
	Centroid colorspace.Lab
	// Weight is the number of pixels assigned to the cluster.
	Weight int
}

// Refinement is the outcome of Refine.
type Refinement struct {
	Clusters []Cluster
	// Changes holds, per iteration, how many bins moved to another cluster.
	// The first pass counts every non-empty bin. The counts usually shrink
	// but are not guaranteed to.
	Changes []int
	// Distortion holds, per iteration, the pixel-weighted squared Lab
	// distance from every bin mean to the centroid it was just assigned to.
	// It never increases from one pass to the next.
	Distortion []float64
	Iterations int
	// Converged is false when the loop stopped at the iteration cap.
	Converged bool
}

type point struct {
	bin  int
	mean colorspace.Lab
}

// Refine runs a weighted Lloyd iteration over the non-empty bins of h,
// starting from seeds. Each bin is one point located at its mean color and
// weighted by its pixel count. The loop stops at the first pass in which no
// bin changes cluster, or after maxIterations passes, in which case the
// latest centroids are returned.
func Refine(h *Histogram, seeds []colorspace.Lab, maxIterations int, workers int) Refinement {
	if len(seeds) == 0 {
		return Refinement{Converged: true}
	}
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	points := make([]point, 0, HistogramSize)
	for i := range h {
		if h[i].Weight > 0 {
			points = append(points, point{bin: i, mean: h[i].Mean()})
		}
	}

	centroids := make([]colorspace.Lab, len(seeds))
	copy(centroids, seeds)

	assigned := make([]int, len(points))
	for i := range assigned {
		assigned[i] = -1
	}
	next := make([]int, len(points))

	sums := make([][3]float64, len(centroids))
	weights := make([]int, len(centroids))

	result := Refinement{}
	for result.Iterations < maxIterations {
		assign(points, centroids, next, workers)

		changes := 0
		distortion := 0.0
		for i := range next {
			if next[i] != assigned[i] {
				changes++
			}
			d := colorspace.DistanceSquared(points[i].mean, centroids[next[i]])
			distortion += float64(h[points[i].bin].Weight) * float64(d)
		}
		assigned, next = next, assigned

		for c := range sums {
			sums[c] = [3]float64{}
			weights[c] = 0
		}
		for i, p := range points {
			c := assigned[i]
			bin := &h[p.bin]
			sums[c][0] += bin.Sum[0]
			sums[c][1] += bin.Sum[1]
			sums[c][2] += bin.Sum[2]
			weights[c] += bin.Weight
		}
		for c := range centroids {
			if weights[c] == 0 {
				continue
			}
			w := float64(weights[c])
			centroids[c] = colorspace.Lab{
				L: float32(sums[c][0] / w),
				A: float32(sums[c][1] / w),
				B: float32(sums[c][2] / w),
			}
		}

		result.Iterations++
		result.Changes = append(result.Changes, changes)
		result.Distortion = append(result.Distortion, distortion)
		if changes == 0 {
			result.Converged = true
			break
		}
	}

	result.Clusters = make([]Cluster, len(centroids))
	for c := range centroids {
		result.Clusters[c] = Cluster{Centroid: centroids[c], Weight: weights[c]}
	}

	return result
}

// assign writes the index of the nearest centroid of every point into out.
func assign(points []point, centroids []colorspace.Lab, out []int, workers int) {
	workers = clampInt(workers, 1, maxInt(1, len(points)/minParallelBins))
	if workers == 1 {
		assignRange(points, centroids, out)
		return
	}

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		start, end := splitRange(len(points), workers, worker)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			assignRange(points[start:end], centroids, out[start:end])
		}(start, end)
	}
	wg.Wait()
}

func assignRange(points []point, centroids []colorspace.Lab, out []int) {
	for i, p := range points {
		out[i] = nearest(p.mean, centroids)
	}
}

// nearest returns the index of the closest centroid; ties keep the lowest index.
func nearest(c colorspace.Lab, centroids []colorspace.Lab) int {
	best := 0
	bestDistance := math32.Inf(1)
	for i, centroid := range centroids {
		if d := colorspace.DistanceSquared(c, centroid); d < bestDistance {
			bestDistance = d
			best = i
		}
	}
	return best
}

func maxInt(left int, right int) int {
	if left > right {
		return left
	}
	return right
}
