package image

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	_ "github.com/xfmoulet/qoi"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Load decodes the image file at path. png, jpeg, gif, webp and qoi are supported.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return img, nil
}

// LoadRaw reads an interleaved RGB8 pixel buffer from path. Files ending in
// .zst are zstd-decompressed first.
func LoadRaw(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw pixels: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	pixels, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read raw pixels: %w", err)
	}
	if len(pixels)%3 != 0 {
		return nil, fmt.Errorf("raw pixels in %s: %d bytes is not a whole number of RGB triplets", path, len(pixels))
	}

	return pixels, nil
}

// Resize scales img down with nearest-neighbour sampling so that its longest
// side is at most maxDimension. Smaller images and maxDimension <= 0 leave img
// untouched.
func Resize(img image.Image, maxDimension int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return img
	}

	tw, th := maxDimension, maxDimension
	if w >= h {
		th = h * maxDimension / w
	} else {
		tw = w * maxDimension / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Pixels flattens img into an interleaved RGB8 buffer, dropping pixels whose
// alpha is at or below alphaThreshold. Colors are un-premultiplied.
func Pixels(img image.Image, alphaThreshold uint8) []byte {
	b := img.Bounds()
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	}

	pixels := make([]byte, 0, b.Dx()*b.Dy()*3)
	sb := src.Bounds()
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		row := src.Pix[src.PixOffset(sb.Min.X, y):]
		for x := 0; x < sb.Dx(); x++ {
			p := row[x*4 : x*4+4]
			if p[3] <= alphaThreshold {
				continue
			}
			pixels = append(pixels, p[0], p[1], p[2])
		}
	}

	return pixels
}
