package palette

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmuldo/labpal/colorspace"
)

func TestExtractTwoColorImage(t *testing.T) {
	t.Parallel()

	pixels := []byte{255, 0, 0, 255, 0, 0, 0, 0, 255, 0, 0, 255}

	result, err := Extract(pixels, Options{Size: 2})
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}

	want := []colorspace.RGB{{R: 255}, {B: 255}}
	if diff := cmp.Diff(want, result.Colors()); diff != "" {
		t.Fatalf("unexpected palette (-want +got):\n%s", diff)
	}
	if result.Swatches[0].Population != 2 || result.Swatches[1].Population != 2 {
		t.Fatalf("expected populations of 2, got %+v", result.Swatches)
	}
	if !result.Converged {
		t.Fatal("expected refinement to converge")
	}
}

func TestExtractUniformImage(t *testing.T) {
	t.Parallel()

	input := colorspace.RGB{R: 200, G: 120, B: 40}
	pixels := fill(input, 100)

	colors, err := ExtractPalette(pixels)
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}
	if len(colors) != 1 {
		t.Fatalf("expected exactly one color, got %v", colors)
	}
	if !nearRGB(colors[0], input, 1) {
		t.Fatalf("expected %v, got %v", input, colors[0])
	}
}

func TestExtractSeparatesBlobs(t *testing.T) {
	t.Parallel()

	bases := []colorspace.RGB{
		{R: 216, G: 40, B: 40},
		{R: 40, G: 200, B: 56},
		{R: 40, G: 56, B: 216},
		{R: 232, G: 216, B: 40},
	}
	pixels := blobs(bases, []int{400, 300, 200, 100})

	result, err := Extract(pixels, Options{Size: 4, Workers: 1})
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}
	if len(result.Swatches) != 4 {
		t.Fatalf("expected 4 swatches, got %d", len(result.Swatches))
	}

	for i, s := range result.Swatches {
		if !nearRGB(s.Color, bases[i], 3) {
			t.Fatalf("swatch %d: expected a color near %v, got %v", i, bases[i], s.Color)
		}
	}

	populations := make([]int, len(result.Swatches))
	for i, s := range result.Swatches {
		populations[i] = s.Population
	}
	if diff := cmp.Diff([]int{400, 300, 200, 100}, populations); diff != "" {
		t.Fatalf("unexpected populations (-want +got):\n%s", diff)
	}
}

func TestExtractSizeBound(t *testing.T) {
	t.Parallel()

	gradient := make([]byte, 0, HistogramSize*3)
	for r := 0; r < 256; r += 16 {
		for g := 0; g < 256; g += 16 {
			for b := 0; b < 256; b += 16 {
				gradient = append(gradient, byte(r+8), byte(g+8), byte(b+8))
			}
		}
	}

	for _, size := range []int{1, 2, 5, 12} {
		result, err := Extract(gradient, Options{Size: size})
		if err != nil {
			t.Fatalf("extract palette of size %d: %v", size, err)
		}
		if len(result.Swatches) != size {
			t.Fatalf("expected %d swatches, got %d", size, len(result.Swatches))
		}
	}

	few := append(fill(colorspace.RGB{R: 10, G: 10, B: 10}, 5), fill(colorspace.RGB{R: 250, G: 250, B: 250}, 5)...)
	result, err := Extract(few, Options{Size: 7})
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}
	if len(result.Swatches) != 2 {
		t.Fatalf("expected the palette to be capped at 2 colors, got %d", len(result.Swatches))
	}
}

func TestExtractDeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()

	pixels := noise(3*chunkPixels + 1234)

	var reference Result
	for i, workers := range []int{1, 2, 3, 8} {
		result, err := Extract(pixels, Options{Size: 6, Workers: workers})
		if err != nil {
			t.Fatalf("extract palette with %d workers: %v", workers, err)
		}
		if i == 0 {
			reference = result
			continue
		}
		if diff := cmp.Diff(reference.Swatches, result.Swatches); diff != "" {
			t.Fatalf("palette with %d workers differs (-1 worker +%d workers):\n%s", workers, workers, diff)
		}
		if reference.Iterations != result.Iterations {
			t.Fatalf("iterations with %d workers: %d, want %d", workers, result.Iterations, reference.Iterations)
		}
	}
}

func TestExtractRepeatable(t *testing.T) {
	t.Parallel()

	pixels := noise(5000)

	first, err := ExtractPalette(pixels)
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}
	second, err := ExtractPalette(pixels)
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("palettes differ between calls:\n%s", diff)
	}
	if len(first) != 5 {
		t.Fatalf("expected the default size of 5, got %d", len(first))
	}
}

func TestExtractRejectsPartialPixels(t *testing.T) {
	t.Parallel()

	_, err := Extract([]byte{1, 2, 3, 4}, Options{})
	if !errors.Is(err, ErrInvalidInputLength) {
		t.Fatalf("expected ErrInvalidInputLength, got %v", err)
	}

	if _, err := ExtractPalette([]byte{1, 2}); !errors.Is(err, ErrInvalidInputLength) {
		t.Fatalf("expected ErrInvalidInputLength, got %v", err)
	}
}

func TestExtractEmptyImage(t *testing.T) {
	t.Parallel()

	result, err := Extract(nil, Options{})
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}
	if len(result.Swatches) != 0 {
		t.Fatalf("expected an empty palette, got %v", result.Swatches)
	}
}

func TestExtractIterationCap(t *testing.T) {
	t.Parallel()

	result, err := Extract(noise(4000), Options{Size: 5, MaxIterations: 1})
	if err != nil {
		t.Fatalf("extract palette: %v", err)
	}
	if result.Iterations != 1 {
		t.Fatalf("expected 1 iteration, got %d", result.Iterations)
	}
	if result.Converged {
		t.Fatal("expected an unconverged result at the iteration cap")
	}
	if len(result.Swatches) != 5 {
		t.Fatalf("expected best-so-far palette of 5 colors, got %d", len(result.Swatches))
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	got := Flatten([]colorspace.RGB{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}})
	if diff := cmp.Diff([]byte{1, 2, 3, 4, 5, 6}, got); diff != "" {
		t.Fatalf("unexpected buffer (-want +got):\n%s", diff)
	}
}

func TestNormalizedOptions(t *testing.T) {
	t.Parallel()

	o := Options{}.normalized()
	if o.Size != 5 || o.MaxIterations != 300 || o.Workers < 1 {
		t.Fatalf("unexpected defaults: %+v", o)
	}

	o = Options{Size: 1 << 20, Workers: 1000}.normalized()
	if o.Size != HistogramSize || o.Workers != maxWorkerCap {
		t.Fatalf("expected clamped options, got %+v", o)
	}
}

func fill(c colorspace.RGB, n int) []byte {
	pixels := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		pixels = append(pixels, c.R, c.G, c.B)
	}
	return pixels
}

// blobs returns counts[i] pixels jittered by at most 3 around bases[i].
func blobs(bases []colorspace.RGB, counts []int) []byte {
	var pixels []byte
	for i, base := range bases {
		for j := 0; j < counts[i]; j++ {
			pixels = append(pixels,
				byte(int(base.R)+j%7-3),
				byte(int(base.G)+j%5-2),
				byte(int(base.B)+j%3-1),
			)
		}
	}
	return pixels
}

func noise(n int) []byte {
	r := rand.New(rand.NewSource(1))
	pixels := make([]byte, n*3)
	r.Read(pixels)
	return pixels
}

func nearRGB(a, b colorspace.RGB, tolerance int) bool {
	return abs(int(a.R)-int(b.R)) <= tolerance &&
		abs(int(a.G)-int(b.G)) <= tolerance &&
		abs(int(a.B)-int(b.B)) <= tolerance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
