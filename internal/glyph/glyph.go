// Package glyph ties the trimming and packing steps together
// for a whole set of characters.
//
// Glyph values are never updated in place:
// every stage takes glyphs and returns new ones.
package glyph

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/quasilyte/glyphpack/internal/bitmap"
	"github.com/quasilyte/glyphpack/internal/pack"
)

// Glyph is a single character raster plus its derived data.
type Glyph struct {
	Char rune

	Grid *bitmap.Grid

	// Trim is the foreground bounding box of Grid (all edges trimmed).
	Trim bitmap.Rect

	// Packed is Grid encoded with the config used to create the glyph.
	Packed []byte
}

func (g Glyph) String() string {
	if g.Grid == nil {
		return fmt.Sprintf("%q", g.Char)
	}
	return fmt.Sprintf("%q %dx%d", g.Char, g.Grid.Width(), g.Grid.Height())
}

// New creates a glyph from a freshly rasterized grid.
// The grid ownership is transferred to the glyph.
func New(ch rune, grid *bitmap.Grid, cfg pack.Config) (Glyph, error) {
	trim, err := bitmap.Trim(grid, true, bitmap.EdgesAll)
	if err != nil {
		return Glyph{}, fmt.Errorf("%q: trim: %w", ch, err)
	}
	packed, err := pack.Pack(grid, cfg)
	if err != nil {
		return Glyph{}, fmt.Errorf("%q: pack: %w", ch, err)
	}
	return Glyph{
		Char:   ch,
		Grid:   grid,
		Trim:   trim,
		Packed: packed,
	}, nil
}

// Options control how the per-glyph passes are executed.
type Options struct {
	Pack pack.Config

	// Workers limits the number of glyphs processed concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Source produces the raster for the i-th glyph of a set.
type Source func(i int) (rune, *bitmap.Grid, error)

// Build runs New for n glyphs provided by src.
// Glyphs are processed concurrently; the result keeps src order.
func Build(n int, src Source, opts Options) ([]Glyph, error) {
	glyphs := make([]Glyph, n)
	err := forEach(n, opts.workers(), func(i int) error {
		ch, grid, err := src(i)
		if err != nil {
			return err
		}
		g, err := New(ch, grid, opts.Pack)
		if err != nil {
			return err
		}
		glyphs[i] = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return glyphs, nil
}

// forEach calls fn for every index in [0, n) using up to workers goroutines.
// The first error is returned after all running calls complete.
func forEach(n, workers int, fn func(i int) error) error {
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			return fn(i)
		})
	}
	return eg.Wait()
}
