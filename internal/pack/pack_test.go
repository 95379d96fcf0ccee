package pack

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/quasilyte/glyphpack/internal/bitmap"
)

func mustParse(t *testing.T, rows ...string) *bitmap.Grid {
	t.Helper()
	g, err := bitmap.ParseGrid(rows...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func randomGrid(t *testing.T, rng *rand.Rand, w, h int) *bitmap.Grid {
	t.Helper()
	g, err := bitmap.NewGrid(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, rng.Intn(2) == 0)
		}
	}
	return g
}

var allConfigs = []Config{
	{BitOrder: MsbFirst, Layout: RowMajor},
	{BitOrder: LsbFirst, Layout: RowMajor},
	{BitOrder: MsbFirst, Layout: ColumnMajor},
	{BitOrder: LsbFirst, Layout: ColumnMajor},
}

func TestPack(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
		cfg  Config
		want []byte
	}{
		{
			name: "alternating msb",
			rows: []string{"#.#.#.#."},
			cfg:  Config{BitOrder: MsbFirst},
			want: []byte{0xAA},
		},
		{
			name: "alternating lsb",
			rows: []string{"#.#.#.#."},
			cfg:  Config{BitOrder: LsbFirst},
			want: []byte{0x55},
		},
		{
			name: "ten wide msb",
			rows: []string{"##########"},
			cfg:  Config{BitOrder: MsbFirst},
			want: []byte{0xFF, 0xC0},
		},
		{
			name: "ten wide lsb",
			rows: []string{"##########"},
			cfg:  Config{BitOrder: LsbFirst},
			want: []byte{0xFF, 0x03},
		},
		{
			name: "two rows",
			rows: []string{
				"#...",
				"...#",
			},
			cfg:  Config{BitOrder: MsbFirst},
			want: []byte{0x80, 0x10},
		},
		{
			name: "vertical bar column msb",
			rows: []string{
				"#..",
				"#..",
				"#..",
				"#..",
				"#..",
				"#..",
				"#..",
				"#..",
			},
			cfg:  Config{BitOrder: MsbFirst, Layout: ColumnMajor},
			want: []byte{0xFF, 0x00, 0x00},
		},
		{
			name: "underscore column lsb",
			rows: []string{
				"...",
				"...",
				"...",
				"...",
				"...",
				"...",
				"...",
				"###",
			},
			cfg:  Config{BitOrder: LsbFirst, Layout: ColumnMajor},
			want: []byte{0x80, 0x80, 0x80},
		},
		{
			name: "two pages",
			rows: []string{
				"#.",
				"..",
				"..",
				"..",
				"..",
				"..",
				"..",
				"..",
				".#",
				"#.",
			},
			cfg:  Config{BitOrder: MsbFirst, Layout: ColumnMajor},
			want: []byte{0x80, 0x00, 0x40, 0x80},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Pack(mustParse(t, tc.rows...), tc.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Pack() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		w := 1 + rng.Intn(30)
		h := 1 + rng.Intn(30)
		g := randomGrid(t, rng, w, h)
		for _, cfg := range allConfigs {
			data, err := Pack(g, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if len(data) != Size(w, h, cfg.Layout) {
				t.Fatalf("%dx%d %v: got %d bytes, want %d", w, h, cfg, len(data), Size(w, h, cfg.Layout))
			}
		}
	}
}

func TestPackRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		w := 1 + rng.Intn(30)
		h := 1 + rng.Intn(30)
		g := randomGrid(t, rng, w, h)
		for _, cfg := range allConfigs {
			data, err := Pack(g, cfg)
			if err != nil {
				t.Fatal(err)
			}
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if Bit(data, w, h, cfg, x, y) != g.At(x, y) {
						t.Fatalf("%v: pixel (%d,%d) mismatch in grid:\n%s", cfg, x, y, g)
					}
				}
			}
		}
	}
}

func TestPackPaddingBitsAreZero(t *testing.T) {
	g, err := bitmap.NewGrid(10, 11)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 11; y++ {
		for x := 0; x < 10; x++ {
			g.Set(x, y, true)
		}
	}
	for _, cfg := range allConfigs {
		data, err := Pack(g, cfg)
		if err != nil {
			t.Fatal(err)
		}
		ones := 0
		for _, b := range data {
			for ; b != 0; b &= b - 1 {
				ones++
			}
		}
		if ones != 10*11 {
			t.Errorf("%v: got %d set bits, want %d", cfg, ones, 10*11)
		}
	}
}

func TestPackTransposeKeepsPixels(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		w := 1 + rng.Intn(20)
		h := 1 + rng.Intn(20)
		g := randomGrid(t, rng, w, h)
		for _, order := range []BitOrder{MsbFirst, LsbFirst} {
			rowCfg := Config{BitOrder: order, Layout: RowMajor}
			colCfg := Config{BitOrder: order, Layout: ColumnMajor}
			rows, _ := Pack(g, rowCfg)
			cols, _ := Pack(g, colCfg)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if Bit(rows, w, h, rowCfg, x, y) != Bit(cols, w, h, colCfg, x, y) {
						t.Fatalf("%v: (%d,%d) differs", order, x, y)
					}
				}
			}
		}
	}
}

func TestPackInvalid(t *testing.T) {
	g := mustParse(t, "#")
	badConfigs := []Config{
		{BitOrder: BitOrder(5)},
		{Layout: Layout(-1)},
	}
	for _, cfg := range badConfigs {
		if _, err := Pack(g, cfg); !errors.Is(err, bitmap.ErrInvalidArgument) {
			t.Errorf("%+v: got err=%v", cfg, err)
		}
	}
	if _, err := Pack(nil, Config{}); !errors.Is(err, bitmap.ErrInvalidArgument) {
		t.Errorf("nil grid: got err=%v", err)
	}
}

func TestPackColumnMajorPageOrder(t *testing.T) {
	g, err := bitmap.NewGrid(3, 10)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(2, 9, true)
	g.Set(1, 0, true)

	got, err := Pack(g, Config{BitOrder: MsbFirst, Layout: ColumnMajor})
	if err != nil {
		t.Fatal(err)
	}
	// Page 0 holds rows 0-7, page 1 holds rows 8-9.
	want := []byte{
		0x00, 0x80, 0x00,
		0x00, 0x00, 0x40,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}
