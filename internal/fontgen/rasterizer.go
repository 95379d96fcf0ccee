package fontgen

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/quasilyte/glyphpack/internal/bitmap"
)

var errMissingGlyph = errors.New("the font has no glyph for this character")

// Rasterizer renders single characters into monochrome grids.
type Rasterizer interface {
	// Measure returns the raster size the character needs.
	Measure(ch rune) (width, height int, err error)

	// Rasterize renders ch into a width x height grid.
	Rasterize(ch rune, width, height int) (*bitmap.Grid, error)
}

// FaceRasterizer implements Rasterizer on top of a font.Face.
// The face is drawn with a 50% coverage threshold, so any anti-aliasing
// is dropped.
type FaceRasterizer struct {
	// font.Face implementations are not safe for concurrent use.
	mu   sync.Mutex
	face font.Face
}

func NewFaceRasterizer(face font.Face) *FaceRasterizer {
	return &FaceRasterizer{face: face}
}

// LoadFace opens a TTF/OTF font file.
// An empty path loads the built-in Go Mono font.
func LoadFace(path string, size float64) (font.Face, error) {
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (r *FaceRasterizer) Close() error {
	return r.face.Close()
}

func (r *FaceRasterizer) Measure(ch rune) (width, height int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bounds, advance, ok := r.face.GlyphBounds(ch)
	if !ok {
		return 0, 0, errMissingGlyph
	}
	m := r.face.Metrics()
	width = max(advance.Ceil(), (bounds.Max.X - bounds.Min.X).Ceil())
	height = m.Ascent.Ceil() + m.Descent.Ceil()
	return width, height, nil
}

// Rasterize draws the ink of ch horizontally centered, with the
// baseline placed at the font ascent.
func (r *FaceRasterizer) Rasterize(ch rune, width, height int) (*bitmap.Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", bitmap.ErrInvalidArgument, width, height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: r.face,
	}
	s := string(ch)
	var x fixed.Int26_6
	if bounds, _, ok := r.face.GlyphBounds(ch); ok {
		// The ink can start left of the dot or extend past the advance.
		x = (fixed.I(width)-(bounds.Max.X-bounds.Min.X))/2 - bounds.Min.X
	} else {
		x = (fixed.I(width) - d.MeasureString(s)) / 2
	}
	d.Dot = fixed.Point26_6{
		X: x,
		Y: fixed.I(r.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	return bitmap.FromImage(img)
}
