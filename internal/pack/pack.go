// Package pack turns monochrome grids into display-ready byte pages.
package pack

import (
	"fmt"

	"github.com/quasilyte/glyphpack/internal/bitmap"
)

// BitOrder selects which end of a byte the first pixel goes to.
type BitOrder int

const (
	MsbFirst BitOrder = iota
	LsbFirst
)

func (o BitOrder) String() string {
	switch o {
	case MsbFirst:
		return "msb"
	case LsbFirst:
		return "lsb"
	default:
		return "?"
	}
}

// Layout selects the axis a single byte spans.
type Layout int

const (
	// RowMajor packs 8 horizontally adjacent pixels per byte,
	// rows are emitted top to bottom.
	RowMajor Layout = iota

	// ColumnMajor packs 8 vertically adjacent pixels per byte (a page).
	// The output is a sequence of pages: for every group of 8 rows,
	// one byte per column, left to right. The byte holding column x
	// of page p (rows 8p through 8p+7) is at index p*width + x.
	ColumnMajor
)

func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row"
	case ColumnMajor:
		return "column"
	default:
		return "?"
	}
}

type Config struct {
	BitOrder BitOrder
	Layout   Layout
}

// Validate reports an ErrInvalidArgument for unknown enum values.
func (c Config) Validate() error {
	switch c.BitOrder {
	case MsbFirst, LsbFirst:
	default:
		return fmt.Errorf("%w: bit order %d", bitmap.ErrInvalidArgument, int(c.BitOrder))
	}
	switch c.Layout {
	case RowMajor, ColumnMajor:
	default:
		return fmt.Errorf("%w: layout %d", bitmap.ErrInvalidArgument, int(c.Layout))
	}
	return nil
}

// Size returns the number of bytes Pack produces for a width x height grid.
func Size(width, height int, layout Layout) int {
	if layout == ColumnMajor {
		return width * pages(height)
	}
	return stride(width) * height
}

func stride(width int) int { return (width + 7) / 8 }

func pages(height int) int { return (height + 7) / 8 }

// bitMask returns the mask for the i-th pixel (0..7) inside a byte.
func bitMask(i int, order BitOrder) byte {
	if order == MsbFirst {
		return 0x80 >> i
	}
	return 1 << i
}

// Pack encodes g as bytes, a set bit is a foreground pixel.
//
// Bits that don't correspond to any pixel (a partially filled
// last byte of a row or a page) are left zero.
// The result depends only on g and cfg.
func Pack(g *bitmap.Grid, cfg Config) ([]byte, error) {
	if g == nil || g.Width() <= 0 || g.Height() <= 0 {
		return nil, fmt.Errorf("%w: empty grid", bitmap.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rows := packRows(g, cfg.BitOrder)
	if cfg.Layout == RowMajor {
		return rows, nil
	}
	return transpose(rows, g.Width(), g.Height(), cfg.BitOrder), nil
}

func packRows(g *bitmap.Grid, order BitOrder) []byte {
	w, h := g.Width(), g.Height()
	data := make([]byte, 0, stride(w)*h)
	for y := 0; y < h; y++ {
		var b byte
		n := 0
		for x := 0; x < w; x++ {
			if g.At(x, y) {
				b |= bitMask(n, order)
			}
			n++
			if n == 8 {
				data = append(data, b)
				b = 0
				n = 0
			}
		}
		if n != 0 {
			data = append(data, b)
		}
	}
	return data
}

// transpose converts the row-major data into pages.
// Every output byte is assembled from the row-major bits directly.
func transpose(rows []byte, width, height int, order BitOrder) []byte {
	rowCfg := Config{BitOrder: order, Layout: RowMajor}
	data := make([]byte, Size(width, height, ColumnMajor))
	for page := 0; page < pages(height); page++ {
		for x := 0; x < width; x++ {
			var b byte
			for i := 0; i < 8; i++ {
				y := page*8 + i
				if y >= height {
					break
				}
				if Bit(rows, width, height, rowCfg, x, y) {
					b |= bitMask(i, order)
				}
			}
			data[page*width+x] = b
		}
	}
	return data
}

// Bit reads the pixel (x, y) back from the data produced by Pack
// for a width x height grid with the given cfg.
// Out of range coordinates read as background.
func Bit(data []byte, width, height int, cfg Config, x, y int) bool {
	if x < 0 || y < 0 || x >= width || y >= height {
		return false
	}
	var index, bit int
	if cfg.Layout == ColumnMajor {
		index = (y/8)*width + x
		bit = y % 8
	} else {
		index = y*stride(width) + x/8
		bit = x % 8
	}
	if index >= len(data) {
		return false
	}
	return data[index]&bitMask(bit, cfg.BitOrder) != 0
}
