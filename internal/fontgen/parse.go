package fontgen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quasilyte/glyphpack/internal/bitmap"
)

// ImageRasterizer serves pre-drawn glyph images instead of a font.
//
// Every glyph is a PNG file named after its decimal code point,
// like "65.png" for 'A'. Non-transparent pixels are foreground.
type ImageRasterizer struct {
	grids map[rune]*bitmap.Grid
}

// LoadImageDir reads all glyph images from dir.
func LoadImageDir(dir string) (*ImageRasterizer, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	r := &ImageRasterizer{grids: make(map[rune]*bitmap.Grid, len(files))}
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".png" {
			continue
		}
		runeValueString := strings.TrimSuffix(f.Name(), ".png")
		runeValue, err := strconv.Atoi(runeValueString)
		if err != nil {
			return nil, fmt.Errorf("%s: parse filename as rune value: %w", f.Name(), err)
		}
		imgBytes, err := os.ReadFile(filepath.Join(dir, f.Name()))
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(imgBytes))
		if err != nil {
			return nil, fmt.Errorf("%s: decode image: %w", f.Name(), err)
		}
		grid, err := bitmap.FromImage(img)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		r.grids[rune(runeValue)] = grid
	}
	return r, nil
}

// Characters returns every character that has an image,
// as a string suitable for Config.Characters.
func (r *ImageRasterizer) Characters() string {
	var buf strings.Builder
	for ch := range r.grids {
		buf.WriteRune(ch)
	}
	return buf.String()
}

func (r *ImageRasterizer) Measure(ch rune) (width, height int, err error) {
	g, ok := r.grids[ch]
	if !ok {
		return 0, 0, errMissingGlyph
	}
	return g.Width(), g.Height(), nil
}

// Rasterize copies the glyph image into a width x height grid.
// Smaller images are centered horizontally and aligned to the top.
func (r *ImageRasterizer) Rasterize(ch rune, width, height int) (*bitmap.Grid, error) {
	src, ok := r.grids[ch]
	if !ok {
		return nil, fmt.Errorf("%q: %w", ch, errMissingGlyph)
	}
	if src.Width() > width || src.Height() > height {
		return nil, fmt.Errorf("%w: %q image is %dx%d, target is %dx%d",
			bitmap.ErrInvalidArgument, ch, src.Width(), src.Height(), width, height)
	}
	dst, err := bitmap.NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	dx := (width - src.Width()) / 2
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			dst.Set(dx+x, y, src.At(x, y))
		}
	}
	return dst, nil
}
