package image

import (
	"sort"

	"github.com/mmuldo/labpal/colorspace"
)

type ColorCount struct {
	Color colorspace.RGB
	Count int
}

type ColorCountList []ColorCount

func (ccl ColorCountList) Len() int { return len(ccl) }
func (ccl ColorCountList) Less(i, j int) bool {
	if ccl[i].Count != ccl[j].Count {
		return ccl[i].Count > ccl[j].Count
	}
	return packed(ccl[i].Color) < packed(ccl[j].Color)
}
func (ccl ColorCountList) Swap(i, j int) { ccl[i], ccl[j] = ccl[j], ccl[i] }

// GetColors returns a map of a pixel buffer's colors
// and the number of times each color occurs
func GetColors(pixels []byte) map[colorspace.RGB]int {
	m := make(map[colorspace.RGB]int)

	for i := 0; i+2 < len(pixels); i += 3 {
		m[colorspace.RGB{R: pixels[i], G: pixels[i+1], B: pixels[i+2]}]++
	}

	return m
}

// RankColors orders colors by how often they occur, most frequent first.
// Equal counts are ordered by color so the ranking is stable.
func RankColors(m map[colorspace.RGB]int) ColorCountList {
	cc := make(ColorCountList, 0, len(m))

	for k, v := range m {
		cc = append(cc, ColorCount{k, v})
	}

	sort.Sort(cc)
	return cc
}

func packed(c colorspace.RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
