package fontgen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/quasilyte/glyphpack/internal/pack"
)

// PackedFace is a font.Face that draws glyphs straight from
// the packed data of a GenerationResult.
//
// Every glyph occupies a fixed-size cell, the dot is located
// at the bottom-left corner of the cell.
// It's not safe for concurrent use.
type PackedFace struct {
	data       []byte
	cfg        pack.Config
	glyphs     []GlyphInfo
	cellWidth  int
	cellHeight int

	lastGlyphRune  rune
	lastGlyphIndex int
}

// NewPackedFace creates a face for the generation result.
// The result glyphs are expected to be sorted by value,
// which is how the generator produces them.
func NewPackedFace(result GenerationResult) *PackedFace {
	return &PackedFace{
		data:       result.Data,
		cfg:        result.Pack,
		glyphs:     result.Glyphs,
		cellWidth:  result.CellWidth,
		cellHeight: result.CellHeight,
	}
}

func (f *PackedFace) Close() error {
	return nil
}

func (f *PackedFace) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	index, ok := f.glyphIndex(r)
	if !ok {
		return dr, nil, maskp, 0, false
	}
	info := f.glyphs[index]

	m := image.NewAlpha(image.Rect(0, 0, info.Width, info.Height))
	data := f.data[info.Offset : info.Offset+info.Size]
	for y := 0; y < info.Height; y++ {
		for x := 0; x < info.Width; x++ {
			if pack.Bit(data, info.Width, info.Height, f.cfg, x, y) {
				m.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}

	dx := dot.X.Floor() + info.X
	dy := dot.Y.Floor() - f.cellHeight + info.Y
	dr = image.Rect(dx, dy, dx+info.Width, dy+info.Height)
	return dr, m, maskp, fixed.I(f.cellWidth), true
}

func (f *PackedFace) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	if _, ok := f.glyphIndex(r); !ok {
		return 0, false
	}
	return fixed.I(f.cellWidth), true
}

func (f *PackedFace) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	index, ok := f.glyphIndex(r)
	if !ok {
		return bounds, advance, false
	}
	info := f.glyphs[index]
	bounds = fixed.R(info.X, info.Y-f.cellHeight, info.X+info.Width, info.Y+info.Height-f.cellHeight)
	return bounds, fixed.I(f.cellWidth), true
}

func (f *PackedFace) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

func (f *PackedFace) Metrics() font.Metrics {
	return font.Metrics{
		Height: fixed.I(f.cellHeight),
		Ascent: fixed.I(f.cellHeight),
	}
}

func (f *PackedFace) glyphIndex(r rune) (int, bool) {
	slice := f.glyphs

	// Consecutive lookups are often for neighbouring runes.
	// Without gaps in between, the index can be computed directly.
	{
		delta := int(r) - int(f.lastGlyphRune)
		index := uint(f.lastGlyphIndex + delta)
		if index < uint(len(slice)) && slice[index].Value == r {
			f.lastGlyphRune = r
			f.lastGlyphIndex = int(index)
			return int(index), true
		}
	}

	i, j := 0, len(slice)
	for i < j {
		h := int(uint(i+j) >> 1)
		if slice[h].Value < r {
			i = h + 1
		} else {
			j = h
		}
	}
	if i < len(slice) && slice[i].Value == r {
		f.lastGlyphRune = r
		f.lastGlyphIndex = i
		return i, true
	}
	return 0, false
}

// RenderPreview draws every glyph of the result into an image,
// columns glyphs per line, separated by a 1 pixel gap.
// Foreground is black on a white background.
func RenderPreview(result GenerationResult, columns int) (*image.Gray, error) {
	if len(result.Glyphs) == 0 {
		return nil, fmt.Errorf("no glyphs to preview")
	}
	if columns <= 0 {
		columns = 16
	}
	columns = min(columns, len(result.Glyphs))
	rows := (len(result.Glyphs) + columns - 1) / columns

	stepX := result.CellWidth + 1
	stepY := result.CellHeight + 1
	img := image.NewGray(image.Rect(0, 0, columns*stepX+1, rows*stepY+1))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: NewPackedFace(result),
	}
	for i, info := range result.Glyphs {
		col := i % columns
		row := i / columns
		d.Dot = fixed.P(1+col*stepX, 1+row*stepY+result.CellHeight)
		d.DrawString(string(info.Value))
	}
	return img, nil
}
