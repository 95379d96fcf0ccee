// Package glyphpack converts monochrome glyph rasters into packed
// byte pages for character-addressable displays.
package glyphpack

import (
	"image"

	"github.com/quasilyte/glyphpack/internal/bitmap"
	"github.com/quasilyte/glyphpack/internal/fontgen"
	"github.com/quasilyte/glyphpack/internal/glyph"
	"github.com/quasilyte/glyphpack/internal/pack"
)

// Config contains all exported generator options.
type Config = fontgen.Config

type GenerationResult = fontgen.GenerationResult

type GlyphInfo = fontgen.GlyphInfo

// Rasterizer is a glyph source: it measures and renders characters.
type Rasterizer = fontgen.Rasterizer

type (
	Grid     = bitmap.Grid
	Rect     = bitmap.Rect
	Edges    = bitmap.Edges
	Rotation = bitmap.Rotation
)

const (
	EdgeTop         = bitmap.EdgeTop
	EdgeBottom      = bitmap.EdgeBottom
	EdgeLeft        = bitmap.EdgeLeft
	EdgeRight       = bitmap.EdgeRight
	EdgesNone       = bitmap.EdgesNone
	EdgesVertical   = bitmap.EdgesVertical
	EdgesHorizontal = bitmap.EdgesHorizontal
	EdgesAll        = bitmap.EdgesAll

	Rotate0   = bitmap.Rotate0
	Rotate90  = bitmap.Rotate90
	Rotate180 = bitmap.Rotate180
	Rotate270 = bitmap.Rotate270
)

type (
	PackConfig = pack.Config
	BitOrder   = pack.BitOrder
	Layout     = pack.Layout
)

const (
	MsbFirst = pack.MsbFirst
	LsbFirst = pack.LsbFirst

	RowMajor    = pack.RowMajor
	ColumnMajor = pack.ColumnMajor
)

type (
	Glyph         = glyph.Glyph
	GlyphOptions  = glyph.Options
	PaddingPolicy = glyph.Policy
	Padding       = glyph.Padding
)

const (
	PaddingNone     = glyph.PaddingNone
	PaddingTightest = glyph.PaddingTightest
	PaddingFixed    = glyph.PaddingFixed
)

// BlobMode selects the optional raw data output, see [Config.BlobMode].
type BlobMode = fontgen.BlobMode

const (
	NoBlob   = fontgen.NoBlob
	RawBlob  = fontgen.RawBlob
	GzipBlob = fontgen.GzipBlob
)

var (
	// ErrInvalidArgument reports malformed inputs, use errors.Is to check.
	ErrInvalidArgument = bitmap.ErrInvalidArgument

	// ErrEmptyGlyphSet reports that there are no glyphs to work with.
	ErrEmptyGlyphSet = glyph.ErrEmptyGlyphSet
)

// Generate renders, crops and packs the configured characters
// and writes the results to [Config.OutDir].
func Generate(config Config) (GenerationResult, error) {
	return fontgen.Generate(config)
}

// PackedFace is a font.Face over generated packed glyph data.
type PackedFace = fontgen.PackedFace

// NewPackedFace returns a font.Face that draws the packed glyphs of result.
func NewPackedFace(result GenerationResult) *PackedFace {
	return fontgen.NewPackedFace(result)
}

// RenderPreview draws all glyphs of result decoded from their packed bytes.
func RenderPreview(result GenerationResult, columns int) (*image.Gray, error) {
	return fontgen.RenderPreview(result, columns)
}

// Trim returns the smallest rect enclosing all pixels equal to keep,
// moving only the sides listed in edges.
func Trim(g *Grid, keep bool, edges Edges) (Rect, error) {
	return bitmap.Trim(g, keep, edges)
}

// Pack encodes g into bytes according to cfg.
func Pack(g *Grid, cfg PackConfig) ([]byte, error) {
	return pack.Pack(g, cfg)
}

// PlanAndApply crops every glyph according to policy
// and returns the updated glyphs.
func PlanAndApply(glyphs []Glyph, policy PaddingPolicy, opts GlyphOptions) ([]Glyph, error) {
	return glyph.PlanAndApply(glyphs, policy, opts)
}
