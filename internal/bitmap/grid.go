package bitmap

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrInvalidArgument is returned for malformed inputs:
// empty grids, zero-area sizes, out of bounds rectangles
// and unknown enumeration values.
var ErrInvalidArgument = errors.New("invalid argument")

// Grid is a monochrome pixel raster.
//
// A true pixel is a foreground pixel.
// Operations of this package never modify a grid they were given;
// Crop and Rotate return new grids.
type Grid struct {
	width  int
	height int
	pix    []bool
}

// NewGrid allocates a background-filled grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidArgument, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		pix:    make([]bool, width*height),
	}, nil
}

// FromImage converts img into a grid.
// A pixel with at least 50% coverage (alpha) becomes foreground.
func FromImage(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	g, err := NewGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			g.pix[y*g.width+x] = a >= 0x8000
		}
	}
	return g, nil
}

// ParseGrid builds a grid from text rows.
// '#' and '1' are foreground, any other byte is background.
// All rows must have the same length.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidArgument)
	}
	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has length %d, expected %d", ErrInvalidArgument, y, len(row), g.width)
		}
		for x := 0; x < len(row); x++ {
			g.pix[y*g.width+x] = row[x] == '#' || row[x] == '1'
		}
	}
	return g, nil
}

func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

// Bounds returns the rectangle covering the whole grid.
func (g *Grid) Bounds() Rect {
	return Rect{Width: g.width, Height: g.height}
}

// At reports whether (x, y) is a foreground pixel.
// Coordinates outside of the grid are background.
func (g *Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.pix[y*g.width+x]
}

// Set changes a single pixel.
// It is meant for grid producers (rasterizers, decoders);
// the trimming and packing code never calls it on a grid it borrowed.
func (g *Grid) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.pix[y*g.width+x] = v
}

// Crop returns a new grid holding the pixels inside r.
func (g *Grid) Crop(r Rect) (*Grid, error) {
	if err := validateGrid(g); err != nil {
		return nil, err
	}
	if !r.In(g.Bounds()) {
		return nil, fmt.Errorf("%w: crop %v exceeds %dx%d grid", ErrInvalidArgument, r, g.width, g.height)
	}
	dst, err := NewGrid(r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < r.Height; y++ {
		src := g.pix[(r.Top+y)*g.width+r.Left:]
		copy(dst.pix[y*r.Width:(y+1)*r.Width], src[:r.Width])
	}
	return dst, nil
}

// Equal reports whether two grids have the same size and pixels.
// A nil grid is only equal to another nil grid.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, v := range g.pix {
		if other.pix[i] != v {
			return false
		}
	}
	return true
}

// String renders the grid using '#' for foreground and '.' for background,
// one line per row.
func (g *Grid) String() string {
	var buf strings.Builder
	buf.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.pix[y*g.width+x] {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func validateGrid(g *Grid) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidArgument)
	}
	if g.width <= 0 || g.height <= 0 {
		return fmt.Errorf("%w: empty %dx%d grid", ErrInvalidArgument, g.width, g.height)
	}
	return nil
}
