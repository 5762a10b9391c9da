package theme

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mmuldo/labpal/colorspace"
	"github.com/mmuldo/labpal/palette"
)

// Palette represents a set of colors and their associated 'roles' (e.g. color0, color1, etc.).
type Palette map[int]palette.Swatch

// Theme represents a desktop theme.
type Theme map[string]interface{}

type byCount []palette.Swatch

func (s byCount) Len() int           { return len(s) }
func (s byCount) Less(i, j int) bool { return s[i].Population > s[j].Population }
func (s byCount) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

type byDarkness []palette.Swatch

func (s byDarkness) Len() int           { return len(s) }
func (s byDarkness) Less(i, j int) bool { return s[i].Lab.L < s[j].Lab.L }
func (s byDarkness) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

//**exported functions**//
// Create creates a new theme from a palette and other options.
// Options override the generated entries.
func Create(p Palette, opts map[string]interface{}) Theme {
	t := make(Theme)

	for _, k := range p.roles() {
		t[roleKey(k)] = Hex(p[k].Color)
	}

	for k, v := range opts {
		t[k] = v
	}

	setDefaults(t, len(p))

	return t
}

// Delegate assigns palette roles: the darker half of the swatches comes
// first, then the lighter half, each ordered by population.
func Delegate(swatches []palette.Swatch) Palette {
	p := make(Palette)

	sorted := make([]palette.Swatch, len(swatches))
	copy(sorted, swatches)

	// group colors into darks and lights
	sort.Stable(byDarkness(sorted))
	d := sorted[:len(sorted)/2]
	l := sorted[len(sorted)/2:]

	// assign roles by prevalence
	sort.Stable(byCount(d))
	sort.Stable(byCount(l))
	for i, c := range d {
		p[i] = c
	}
	for i, c := range l {
		p[len(d)+i] = c
	}

	return p
}

// Hex formats c as #rrggbb.
func Hex(c colorspace.RGB) string {
	return toColorful(c).Hex()
}

// Colors returns the colorN entries of t ordered by role.
func (t Theme) Colors() []Entry {
	var roles []int
	for k := range t {
		if n, ok := parseRole(k); ok {
			roles = append(roles, n)
		}
	}
	sort.Ints(roles)

	entries := make([]Entry, 0, len(roles))
	for _, n := range roles {
		key := roleKey(n)
		entries = append(entries, Entry{Name: key, Hex: fmt.Sprint(t[key])})
	}
	return entries
}

// Preview writes one truecolor line per theme color to w.
func Preview(w io.Writer, t Theme) error {
	for _, e := range t.Colors() {
		c, err := colorful.Hex(e.Hex)
		if err != nil {
			return fmt.Errorf("preview %s: %w", e.Name, err)
		}
		r, g, b := c.RGB255()
		if _, err := fmt.Fprintf(w, "\033[38;2;%d;%d;%dm %s = %s\033[0m\n", r, g, b, e.Name, e.Hex); err != nil {
			return err
		}
	}
	return nil
}

//**helper functions**//
func (p Palette) roles() []int {
	keys := make([]int, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func roleKey(n int) string {
	return "color" + strconv.Itoa(n)
}

func parseRole(key string) (int, bool) {
	if !strings.HasPrefix(key, "color") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, "color"))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func toColorful(c colorspace.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func setDefaults(t Theme, n int) {
	if n == 0 {
		return
	}

	if _, ok := t["background"]; !ok {
		t["background"] = t["color0"]
	}

	if _, ok := t["transparency"]; !ok {
		t["transparency"] = 1.0
	}

	if _, ok := t["foreground"]; !ok {
		t["foreground"] = t[roleKey(n/2)]
	}
}
