package bitmap

import (
	"strings"
)

// Edges is a set of rectangle sides that are allowed to be trimmed.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight

	EdgesNone       Edges = 0
	EdgesVertical         = EdgeTop | EdgeBottom
	EdgesHorizontal       = EdgeLeft | EdgeRight
	EdgesAll              = EdgesVertical | EdgesHorizontal
)

func (e Edges) Has(edge Edges) bool { return e&edge == edge }

func (e Edges) String() string {
	if e == EdgesNone {
		return "none"
	}
	var parts []string
	names := [...]string{"top", "bottom", "left", "right"}
	for i, name := range names {
		if e&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Trim computes the smallest rect that encloses every pixel equal to keep.
//
// Only the sides listed in edges are moved inwards,
// the other sides always span the full grid.
// A grid without any keep pixels is returned as is (its full bounds).
//
// The search runs in four phases, each one narrowing the area
// the next phase has to scan:
// top (rows downwards), left (columns rightwards),
// bottom (rows upwards) and right (columns leftwards).
func Trim(g *Grid, keep bool, edges Edges) (Rect, error) {
	if err := validateGrid(g); err != nil {
		return Rect{}, err
	}

	top, firstX, found := trimTop(g, keep)
	if !found {
		return g.Bounds(), nil
	}
	left, lowY := trimLeft(g, keep, top, firstX)
	bottom, rightX := trimBottom(g, keep, left, max(top, lowY))
	right := trimRight(g, keep, top, bottom, max(firstX, rightX))

	if !edges.Has(EdgeTop) {
		top = 0
	}
	if !edges.Has(EdgeBottom) {
		bottom = g.height - 1
	}
	if !edges.Has(EdgeLeft) {
		left = 0
	}
	if !edges.Has(EdgeRight) {
		right = g.width - 1
	}
	return spanRect(left, top, right, bottom), nil
}

// trimTop finds the first row with a keep pixel.
// It also returns the column of the first such pixel in that row.
func trimTop(g *Grid, keep bool) (top, x int, found bool) {
	for y := 0; y < g.height; y++ {
		row := g.pix[y*g.width : (y+1)*g.width]
		for x, v := range row {
			if v == keep {
				return y, x, true
			}
		}
	}
	return 0, 0, false
}

// trimLeft finds the first column with a keep pixel.
// No column after limitX needs to be scanned: (limitX, top) is a keep pixel.
// The returned lowY is the lowest keep pixel in the found column,
// a lower bound for the bottom edge.
func trimLeft(g *Grid, keep bool, top, limitX int) (left, lowY int) {
	for x := 0; x <= limitX; x++ {
		for y := g.height - 1; y >= top; y-- {
			if g.pix[y*g.width+x] == keep {
				return x, y
			}
		}
	}
	return limitX, top
}

// trimBottom finds the last row with a keep pixel, scanning upwards
// until limitY, which is known to hold one.
// The returned rightX is the rightmost keep pixel of the found row,
// a lower bound for the right edge.
func trimBottom(g *Grid, keep bool, left, limitY int) (bottom, rightX int) {
	for y := g.height - 1; y >= limitY; y-- {
		for x := g.width - 1; x >= left; x-- {
			if g.pix[y*g.width+x] == keep {
				return y, x
			}
		}
	}
	return limitY, left
}

// trimRight finds the last column with a keep pixel,
// scanning leftwards until limitX, which is known to hold one.
func trimRight(g *Grid, keep bool, top, bottom, limitX int) int {
	for x := g.width - 1; x > limitX; x-- {
		for y := bottom; y >= top; y-- {
			if g.pix[y*g.width+x] == keep {
				return x
			}
		}
	}
	return limitX
}
