package glyph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/quasilyte/glyphpack/internal/bitmap"
	"github.com/quasilyte/glyphpack/internal/pack"
)

var testOpts = Options{
	Pack:    pack.Config{BitOrder: pack.MsbFirst, Layout: pack.RowMajor},
	Workers: 2,
}

func buildGlyphs(t *testing.T, rasters map[rune][]string, order ...rune) []Glyph {
	t.Helper()
	glyphs, err := Build(len(order), func(i int) (rune, *bitmap.Grid, error) {
		grid, err := bitmap.ParseGrid(rasters[order[i]]...)
		return order[i], grid, err
	}, testOpts)
	if err != nil {
		t.Fatal(err)
	}
	return glyphs
}

// Three glyphs on a 9x5 canvas with foreground widths 3, 5 and 7.
var testRasters = map[rune][]string{
	'i': {
		".........",
		"...###...",
		"....#....",
		"...###...",
		".........",
	},
	'o': {
		".........",
		".........",
		"..#####..",
		"..#...#..",
		"..#####..",
	},
	'w': {
		".........",
		".#.....#.",
		".#..#..#.",
		"..##.##..",
		".........",
	},
}

func sizes(glyphs []Glyph) []string {
	var out []string
	for _, g := range glyphs {
		out = append(out, fmt.Sprintf("%dx%d", g.Grid.Width(), g.Grid.Height()))
	}
	return out
}

func TestBuild(t *testing.T) {
	glyphs := buildGlyphs(t, testRasters, 'i', 'o', 'w')
	wantTrim := []bitmap.Rect{
		{Left: 3, Top: 1, Width: 3, Height: 3},
		{Left: 2, Top: 2, Width: 5, Height: 3},
		{Left: 1, Top: 1, Width: 7, Height: 3},
	}
	for i, g := range glyphs {
		if g.Char != []rune{'i', 'o', 'w'}[i] {
			t.Errorf("glyph %d: order not preserved, got %q", i, g.Char)
		}
		if diff := cmp.Diff(wantTrim[i], g.Trim); diff != "" {
			t.Errorf("%v trim mismatch (-want +got):\n%s", g, diff)
		}
		if len(g.Packed) != pack.Size(9, 5, pack.RowMajor) {
			t.Errorf("%v: got %d packed bytes", g, len(g.Packed))
		}
	}
}

func TestBuildError(t *testing.T) {
	_, err := Build(3, func(i int) (rune, *bitmap.Grid, error) {
		if i == 1 {
			return 'x', nil, nil
		}
		g, err := bitmap.NewGrid(2, 2)
		return 'a', g, err
	}, testOpts)
	if !errors.Is(err, bitmap.ErrInvalidArgument) {
		t.Errorf("got err=%v", err)
	}
}

func TestPlanAndApply(t *testing.T) {
	testCases := []struct {
		name   string
		policy Policy
		want   []string
	}{
		{
			name:   "none",
			policy: Policy{},
			want:   []string{"9x5", "9x5", "9x5"},
		},
		{
			name:   "tightest both",
			policy: Policy{Horizontal: PaddingTightest, Vertical: PaddingTightest},
			want:   []string{"3x3", "5x3", "7x3"},
		},
		{
			name:   "fixed horizontal",
			policy: Policy{Horizontal: PaddingFixed},
			want:   []string{"7x5", "7x5", "7x5"},
		},
		{
			name:   "fixed vertical tightest horizontal",
			policy: Policy{Horizontal: PaddingTightest, Vertical: PaddingFixed},
			want:   []string{"3x4", "5x4", "7x4"},
		},
		{
			name:   "fixed both",
			policy: Policy{Horizontal: PaddingFixed, Vertical: PaddingFixed},
			want:   []string{"7x4", "7x4", "7x4"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			glyphs := buildGlyphs(t, testRasters, 'i', 'o', 'w')
			result, err := PlanAndApply(glyphs, tc.policy, testOpts)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, sizes(result)); diff != "" {
				t.Errorf("sizes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"9x5", "9x5", "9x5"}, sizes(glyphs)); diff != "" {
				t.Errorf("input glyphs were modified:\n%s", diff)
			}
			for _, g := range result {
				want, err := pack.Pack(g.Grid, testOpts.Pack)
				if err != nil {
					t.Fatal(err)
				}
				if diff := cmp.Diff(want, g.Packed); diff != "" {
					t.Errorf("%v: stale packed bytes:\n%s", g, diff)
				}
				r, _ := bitmap.Trim(g.Grid, true, bitmap.EdgesAll)
				if r != g.Trim {
					t.Errorf("%v: stale trim %v, want %v", g, g.Trim, r)
				}
			}
		})
	}
}

func TestPlanCropsStyle(t *testing.T) {
	glyphs := buildGlyphs(t, testRasters, 'i', 'o')
	plans, err := PlanCrops(glyphs, Policy{Horizontal: PaddingFixed, Vertical: PaddingTightest})
	if err != nil {
		t.Fatal(err)
	}
	want := []Plan{
		{
			Rect:  bitmap.Rect{Left: 2, Top: 1, Width: 5, Height: 3},
			Style: Style{Edges: bitmap.EdgesAll, Fixed: Override{Horizontal: true}},
		},
		{
			Rect:  bitmap.Rect{Left: 2, Top: 2, Width: 5, Height: 3},
			Style: Style{Edges: bitmap.EdgesAll, Fixed: Override{Horizontal: true}},
		},
	}
	if diff := cmp.Diff(want, plans); diff != "" {
		t.Errorf("PlanCrops() mismatch (-want +got):\n%s", diff)
	}

	plans, err = PlanCrops(glyphs, Policy{Vertical: PaddingTightest})
	if err != nil {
		t.Fatal(err)
	}
	if got := plans[0].Style; got != (Style{Edges: bitmap.EdgesVertical}) {
		t.Errorf("got style %+v", got)
	}
}

func TestPlanCropsBlankGlyph(t *testing.T) {
	rasters := map[rune][]string{
		' ': {"....", "....", "...."},
		'.': {"....", "....", ".#.."},
	}
	glyphs := buildGlyphs(t, rasters, ' ', '.')
	result, err := PlanAndApply(glyphs, Policy{Horizontal: PaddingTightest, Vertical: PaddingTightest}, testOpts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"4x3", "1x1"}, sizes(result)); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanCropsEmptySet(t *testing.T) {
	_, err := PlanCrops(nil, Policy{Vertical: PaddingFixed})
	if !errors.Is(err, ErrEmptyGlyphSet) {
		t.Errorf("got err=%v", err)
	}
	plans, err := PlanCrops(nil, Policy{Horizontal: PaddingTightest})
	if err != nil || len(plans) != 0 {
		t.Errorf("got plans=%v err=%v", plans, err)
	}
}

func TestPlanCropsInvalidPolicy(t *testing.T) {
	glyphs := buildGlyphs(t, testRasters, 'i')
	for _, policy := range []Policy{{Horizontal: Padding(9)}, {Vertical: Padding(-1)}} {
		if _, err := PlanCrops(glyphs, policy); !errors.Is(err, bitmap.ErrInvalidArgument) {
			t.Errorf("%+v: got err=%v", policy, err)
		}
	}
}

func TestCropOutOfBounds(t *testing.T) {
	glyphs := buildGlyphs(t, testRasters, 'i')
	plan := Plan{Rect: bitmap.Rect{Left: 5, Top: 0, Width: 5, Height: 5}}
	if _, err := Crop(glyphs[0], plan, testOpts.Pack); !errors.Is(err, bitmap.ErrInvalidArgument) {
		t.Errorf("got err=%v", err)
	}
	if _, err := ApplyCrops(glyphs, nil, testOpts); !errors.Is(err, bitmap.ErrInvalidArgument) {
		t.Errorf("plan count mismatch: got err=%v", err)
	}
}
