package fontgen

import (
	"github.com/quasilyte/glyphpack/internal/bitmap"
	"github.com/quasilyte/glyphpack/internal/glyph"
	"github.com/quasilyte/glyphpack/internal/pack"
)

type Config struct {
	// FontFile is a TTF/OTF file path.
	// An empty value selects the built-in Go Mono font.
	FontFile string

	// FontSize is a font size in pixels per em.
	FontSize float64

	// ImageDir selects pre-drawn glyph images instead of a font,
	// see ImageRasterizer.
	ImageDir string

	// Rasterizer overrides both the font and the ImageDir.
	Rasterizer Rasterizer

	// Characters lists the characters to generate.
	// It can be empty for ImageDir, then every image is used.
	Characters string

	// GenerateSpace keeps the ' ' character if it's present in Characters.
	GenerateSpace bool

	Rotation bitmap.Rotation

	Padding glyph.Policy

	Pack pack.Config

	OutDir string

	// Name is used as a C identifier prefix and as the output file basename.
	Name string

	// BlobMode controls the optional raw binary output.
	BlobMode BlobMode

	// Workers limits the per-glyph concurrency, zero means GOMAXPROCS.
	Workers int

	DebugPrint func(message string)
}

type BlobMode int

const (
	NoBlob BlobMode = iota
	RawBlob
	GzipBlob
)

func (m BlobMode) String() string {
	switch m {
	case NoBlob:
		return "none"
	case RawBlob:
		return "raw"
	case GzipBlob:
		return "gzip"
	default:
		return "?"
	}
}

type GenerationResult struct {
	Warnings []string

	// CellWidth and CellHeight are the raster size of every
	// character (after the rotation) before the padding removal.
	CellWidth  int
	CellHeight int

	Glyphs []GlyphInfo

	// Data holds the packed bytes of all glyphs, see GlyphInfo.Offset.
	Data []byte

	// Pack is the encoding used for Data.
	Pack pack.Config

	// Files lists the generated file paths.
	Files []string
}

type GlyphInfo struct {
	Value rune

	// Name is the Unicode character name, can be empty.
	Name string

	// X and Y locate the glyph raster inside the cell.
	X int
	Y int

	Width  int
	Height int

	// Offset is the glyph's first byte index inside the bitmap data.
	Offset int
	Size   int
}

func Generate(config Config) (GenerationResult, error) {
	g := newGenerator(config)
	return g.Generate()
}
