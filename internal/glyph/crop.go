package glyph

import (
	"errors"
	"fmt"

	"github.com/quasilyte/glyphpack/internal/bitmap"
	"github.com/quasilyte/glyphpack/internal/pack"
)

// ErrEmptyGlyphSet is returned when a set-wide crop bound
// is requested for zero glyphs.
var ErrEmptyGlyphSet = errors.New("empty glyph set")

// Padding is a per-axis padding removal strategy.
type Padding int

const (
	// PaddingNone keeps the axis untouched.
	PaddingNone Padding = iota

	// PaddingTightest crops every glyph to its own bounds.
	// Glyphs end up with different sizes along the axis.
	PaddingTightest

	// PaddingFixed crops every glyph to the bounds shared by the whole set
	// (the extremes of all individual bounds).
	// Glyphs end up with the same size along the axis.
	PaddingFixed
)

func (p Padding) String() string {
	switch p {
	case PaddingNone:
		return "none"
	case PaddingTightest:
		return "tightest"
	case PaddingFixed:
		return "fixed"
	default:
		return "?"
	}
}

func (p Padding) validate(axis string) error {
	switch p {
	case PaddingNone, PaddingTightest, PaddingFixed:
		return nil
	default:
		return fmt.Errorf("%w: %s padding %d", bitmap.ErrInvalidArgument, axis, int(p))
	}
}

// Policy selects a padding strategy for each axis.
type Policy struct {
	Horizontal Padding
	Vertical   Padding
}

func (p Policy) Validate() error {
	if err := p.Horizontal.validate("horizontal"); err != nil {
		return err
	}
	return p.Vertical.validate("vertical")
}

// Override marks the axes whose extent comes from the set-wide rect
// instead of the glyph's own trim result.
type Override struct {
	Horizontal bool
	Vertical   bool
}

// Style describes how a crop rect was derived.
type Style struct {
	// Edges lists the sides that are trimmed at all.
	Edges bitmap.Edges

	Fixed Override
}

// Plan is the crop decision for a single glyph.
type Plan struct {
	Rect  bitmap.Rect
	Style Style
}

// PlanCrops decides the crop rect for every glyph.
//
// The set-wide bounds used by PaddingFixed are derived from the
// glyphs' Trim rects, so every glyph must have been trimmed before
// this call. The returned slice is parallel to glyphs.
func PlanCrops(glyphs []Glyph, policy Policy) ([]Plan, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	fixedH := policy.Horizontal == PaddingFixed
	fixedV := policy.Vertical == PaddingFixed
	if len(glyphs) == 0 {
		if fixedH || fixedV {
			return nil, fmt.Errorf("%w: fixed padding needs at least one glyph", ErrEmptyGlyphSet)
		}
		return nil, nil
	}

	var shared sharedBounds
	if fixedH || fixedV {
		shared = aggregateBounds(glyphs)
	}

	style := Style{
		Fixed: Override{Horizontal: fixedH, Vertical: fixedV},
	}
	if policy.Horizontal != PaddingNone {
		style.Edges |= bitmap.EdgesHorizontal
	}
	if policy.Vertical != PaddingNone {
		style.Edges |= bitmap.EdgesVertical
	}

	plans := make([]Plan, len(glyphs))
	for i, g := range glyphs {
		if g.Grid == nil {
			return nil, fmt.Errorf("%v: %w: glyph without a grid", g, bitmap.ErrInvalidArgument)
		}
		r := g.Grid.Bounds()
		switch policy.Horizontal {
		case PaddingTightest:
			r.Left, r.Width = g.Trim.Left, g.Trim.Width
		case PaddingFixed:
			r.Left, r.Width = shared.left, shared.right-shared.left+1
		}
		switch policy.Vertical {
		case PaddingTightest:
			r.Top, r.Height = g.Trim.Top, g.Trim.Height
		case PaddingFixed:
			r.Top, r.Height = shared.top, shared.bottom-shared.top+1
		}
		plans[i] = Plan{Rect: r, Style: style}
	}
	return plans, nil
}

type sharedBounds struct {
	left, top, right, bottom int
}

// aggregateBounds computes the extremes of all glyph trim rects.
// This is the only step that needs the whole set at once.
func aggregateBounds(glyphs []Glyph) sharedBounds {
	b := sharedBounds{
		left:   glyphs[0].Trim.Left,
		top:    glyphs[0].Trim.Top,
		right:  glyphs[0].Trim.Right(),
		bottom: glyphs[0].Trim.Bottom(),
	}
	for _, g := range glyphs[1:] {
		b.left = min(b.left, g.Trim.Left)
		b.top = min(b.top, g.Trim.Top)
		b.right = max(b.right, g.Trim.Right())
		b.bottom = max(b.bottom, g.Trim.Bottom())
	}
	return b
}

// Crop replaces the glyph grid with the part inside plan.Rect,
// then re-trims and re-packs it.
func Crop(g Glyph, plan Plan, cfg pack.Config) (Glyph, error) {
	if g.Grid == nil {
		return Glyph{}, fmt.Errorf("%v: %w: glyph without a grid", g, bitmap.ErrInvalidArgument)
	}
	grid, err := g.Grid.Crop(plan.Rect)
	if err != nil {
		return Glyph{}, fmt.Errorf("%v: %w", g, err)
	}
	return New(g.Char, grid, cfg)
}

// ApplyCrops runs Crop for every glyph with its plan.
// Glyphs are processed concurrently; the input slice is not modified.
func ApplyCrops(glyphs []Glyph, plans []Plan, opts Options) ([]Glyph, error) {
	if len(plans) != len(glyphs) {
		return nil, fmt.Errorf("%w: %d plans for %d glyphs", bitmap.ErrInvalidArgument, len(plans), len(glyphs))
	}
	result := make([]Glyph, len(glyphs))
	err := forEach(len(glyphs), opts.workers(), func(i int) error {
		cropped, err := Crop(glyphs[i], plans[i], opts.Pack)
		if err != nil {
			return err
		}
		result[i] = cropped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PlanAndApply is PlanCrops followed by ApplyCrops.
func PlanAndApply(glyphs []Glyph, policy Policy, opts Options) ([]Glyph, error) {
	plans, err := PlanCrops(glyphs, policy)
	if err != nil {
		return nil, err
	}
	return ApplyCrops(glyphs, plans, opts)
}
