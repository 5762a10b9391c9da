package palette

import (
	"testing"

	"github.com/mmuldo/labpal/colorspace"
)

func TestDeltaEIdentical(t *testing.T) {
	t.Parallel()

	c := colorspace.RGBToLab(colorspace.RGB{R: 120, G: 40, B: 200})
	if d := DeltaE(c, c); d != 0 {
		t.Fatalf("expected 0 for identical colors, got %f", d)
	}
}

func TestDistinctnessPicksClosestPair(t *testing.T) {
	t.Parallel()

	swatch := func(c colorspace.RGB) Swatch {
		return Swatch{Color: c, Lab: colorspace.RGBToLab(c)}
	}
	red := swatch(colorspace.RGB{R: 255})
	darkRed := swatch(colorspace.RGB{R: 230})
	blue := swatch(colorspace.RGB{B: 255})

	got := Distinctness([]Swatch{red, blue, darkRed})
	want := DeltaE(red.Lab, darkRed.Lab)
	if got != want {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if got <= 0 || got >= DeltaE(red.Lab, blue.Lab) {
		t.Fatalf("unexpected distinctness %f", got)
	}
}

func TestDistinctnessSingleSwatch(t *testing.T) {
	t.Parallel()

	if d := Distinctness([]Swatch{{}}); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
	if d := Distinctness(nil); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}
