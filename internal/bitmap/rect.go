package bitmap

import (
	"fmt"
)

// Rect is a rectangle in pixel coordinates.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Right returns the rightmost column inside the rect.
// It's only meaningful for non-empty rects.
func (r Rect) Right() int { return r.Left + r.Width - 1 }

// Bottom returns the bottommost row inside the rect.
// It's only meaningful for non-empty rects.
func (r Rect) Bottom() int { return r.Top + r.Height - 1 }

// In reports whether r is fully contained within outer.
func (r Rect) In(outer Rect) bool {
	if r.Left < 0 || r.Top < 0 || r.Width < 0 || r.Height < 0 {
		return false
	}
	return r.Left >= outer.Left && r.Top >= outer.Top &&
		r.Left+r.Width <= outer.Left+outer.Width &&
		r.Top+r.Height <= outer.Top+outer.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.Left, r.Top)
}

// spanRect builds a rect from inclusive edge coordinates.
func spanRect(left, top, right, bottom int) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Width:  right - left + 1,
		Height: bottom - top + 1,
	}
}
