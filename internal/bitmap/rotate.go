package bitmap

import (
	"fmt"
)

// Rotation is a clockwise grid rotation.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0"
	case Rotate90:
		return "90"
	case Rotate180:
		return "180"
	case Rotate270:
		return "270"
	default:
		return "?"
	}
}

func (r Rotation) Validate() error {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return nil
	default:
		return fmt.Errorf("%w: rotation %d", ErrInvalidArgument, int(r))
	}
}

// Rotate returns a rotated copy of g.
// Rotate0 still returns a copy.
func Rotate(g *Grid, rot Rotation) (*Grid, error) {
	if err := validateGrid(g); err != nil {
		return nil, err
	}
	if err := rot.Validate(); err != nil {
		return nil, err
	}

	w, h := g.width, g.height
	var dst *Grid
	var err error
	switch rot {
	case Rotate0, Rotate180:
		dst, err = NewGrid(w, h)
	default:
		dst, err = NewGrid(h, w)
	}
	if err != nil {
		return nil, err
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := g.pix[y*w+x]
			switch rot {
			case Rotate0:
				dst.Set(x, y, v)
			case Rotate90:
				dst.Set(h-1-y, x, v)
			case Rotate180:
				dst.Set(w-1-x, h-1-y, v)
			case Rotate270:
				dst.Set(y, w-1-x, v)
			}
		}
	}
	return dst, nil
}
