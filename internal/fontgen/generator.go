package fontgen

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/runenames"

	"github.com/quasilyte/glyphpack/internal/bitmap"
	"github.com/quasilyte/glyphpack/internal/glyph"
)

type generator struct {
	config Config

	rasterizer Rasterizer
	closers    []io.Closer

	chars      []rune
	cellWidth  int
	cellHeight int
	glyphs     []glyph.Glyph
	plans      []glyph.Plan
	data       []byte

	warnings []string
	files    []string
	infos    []GlyphInfo
}

func newGenerator(config Config) *generator {
	return &generator{config: config}
}

func (g *generator) Generate() (GenerationResult, error) {
	type step struct {
		name string
		fn   func() error
	}

	var result GenerationResult

	steps := []step{
		{"validate config", g.validateConfig},
		{"prepare outdir", g.prepareOutdir},
		{"load glyph source", g.loadRasterizer},
		{"build charset", g.buildCharset},
		{"measure glyphs", g.measureGlyphs},
		{"rasterize glyphs", g.rasterizeGlyphs},
		{"remove padding", g.removePadding},
		{"index glyphs", g.indexGlyphs},
		{"create header", g.createHeader},
		{"create blob", g.createBlob},
	}
	var err error
	for _, s := range steps {
		if err = s.fn(); err != nil {
			err = fmt.Errorf("%s: %w", s.name, err)
			break
		}
	}
	g.close()
	result.Warnings = g.warnings
	if err != nil {
		return result, err
	}

	result.CellWidth = g.cellWidth
	result.CellHeight = g.cellHeight
	result.Glyphs = g.infos
	result.Data = g.data
	result.Pack = g.config.Pack
	result.Files = g.files
	return result, nil
}

// close releases the glyph source resources.
// The first failure is reported as a warning.
func (g *generator) close() {
	var closeErr error
	for _, c := range g.closers {
		if err := c.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	g.closers = nil
	if closeErr != nil {
		g.warnings = append(g.warnings, fmt.Sprintf("close glyph source: %v", closeErr))
	}
}

func (g *generator) validateConfig() error {
	if g.config.Name == "" {
		return errors.New("Name can't be empty")
	}
	if !isIdentifier(g.config.Name) {
		return fmt.Errorf("Name %q is not a valid C identifier", g.config.Name)
	}
	if g.config.Rasterizer == nil && g.config.ImageDir == "" && g.config.FontSize <= 0 {
		return fmt.Errorf("%w: font size %v", bitmap.ErrInvalidArgument, g.config.FontSize)
	}
	switch g.config.BlobMode {
	case NoBlob, RawBlob, GzipBlob:
	default:
		return fmt.Errorf("%w: blob mode %d", bitmap.ErrInvalidArgument, int(g.config.BlobMode))
	}
	if err := g.config.Rotation.Validate(); err != nil {
		return err
	}
	if err := g.config.Padding.Validate(); err != nil {
		return err
	}
	if err := g.config.Pack.Validate(); err != nil {
		return err
	}

	if g.config.DebugPrint == nil {
		g.config.DebugPrint = func(message string) {}
	}
	if g.config.OutDir == "" {
		g.config.OutDir = "."
	}

	return nil
}

func (g *generator) prepareOutdir() error {
	return os.MkdirAll(g.config.OutDir, os.ModePerm)
}

func (g *generator) loadRasterizer() error {
	switch {
	case g.config.Rasterizer != nil:
		g.rasterizer = g.config.Rasterizer

	case g.config.ImageDir != "":
		r, err := LoadImageDir(g.config.ImageDir)
		if err != nil {
			return err
		}
		if g.config.Characters == "" {
			g.config.Characters = r.Characters()
		}
		g.rasterizer = r

	default:
		face, err := LoadFace(g.config.FontFile, g.config.FontSize)
		if err != nil {
			return err
		}
		r := NewFaceRasterizer(face)
		g.closers = append(g.closers, r)
		g.rasterizer = r
	}

	return nil
}

func (g *generator) buildCharset() error {
	g.chars = buildCharset(g.config.Characters, g.config.GenerateSpace)
	if len(g.chars) == 0 {
		return glyph.ErrEmptyGlyphSet
	}
	g.config.DebugPrint(fmt.Sprintf("%d distinct characters", len(g.chars)))
	return nil
}

// measureGlyphs picks a single raster size that fits every character.
// Characters the glyph source can't render are dropped with a warning.
func (g *generator) measureGlyphs() error {
	chars := g.chars[:0]
	for _, ch := range g.chars {
		w, h, err := g.rasterizer.Measure(ch)
		if errors.Is(err, errMissingGlyph) {
			g.warnings = append(g.warnings, fmt.Sprintf("%s: skipped, %v", charLabel(ch), err))
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", charLabel(ch), err)
		}
		g.cellWidth = max(g.cellWidth, w)
		g.cellHeight = max(g.cellHeight, h)
		chars = append(chars, ch)
	}
	g.chars = chars

	if len(g.chars) == 0 {
		return glyph.ErrEmptyGlyphSet
	}
	if g.cellWidth <= 0 || g.cellHeight <= 0 {
		return fmt.Errorf("%w: zero-area cell %dx%d", bitmap.ErrInvalidArgument, g.cellWidth, g.cellHeight)
	}
	g.config.DebugPrint(fmt.Sprintf("cell size is %dx%d", g.cellWidth, g.cellHeight))
	return nil
}

func (g *generator) rasterizeGlyphs() error {
	src := func(i int) (rune, *bitmap.Grid, error) {
		ch := g.chars[i]
		grid, err := g.rasterizer.Rasterize(ch, g.cellWidth, g.cellHeight)
		if err != nil {
			return ch, nil, fmt.Errorf("%s: %w", charLabel(ch), err)
		}
		if g.config.Rotation != bitmap.Rotate0 {
			grid, err = bitmap.Rotate(grid, g.config.Rotation)
			if err != nil {
				return ch, nil, err
			}
		}
		return ch, grid, nil
	}

	glyphs, err := glyph.Build(len(g.chars), src, g.glyphOptions())
	if err != nil {
		return err
	}
	g.glyphs = glyphs

	// Rotated cells may have swapped dimensions.
	g.cellWidth = glyphs[0].Grid.Width()
	g.cellHeight = glyphs[0].Grid.Height()
	return nil
}

func (g *generator) removePadding() error {
	policy := g.config.Padding
	g.config.DebugPrint(fmt.Sprintf("padding removal: horizontal=%v vertical=%v", policy.Horizontal, policy.Vertical))

	plans, err := glyph.PlanCrops(g.glyphs, policy)
	if err != nil {
		return err
	}
	glyphs, err := glyph.ApplyCrops(g.glyphs, plans, g.glyphOptions())
	if err != nil {
		return err
	}
	g.glyphs = glyphs
	g.plans = plans
	return nil
}

// maxDescriptorValue bounds the glyph position and size
// fields of the emitted descriptor table.
const maxDescriptorValue = 0xFFFF

func (g *generator) indexGlyphs() error {
	offset := 0
	for i, gl := range g.glyphs {
		info := GlyphInfo{
			Value:  gl.Char,
			Name:   runenames.Name(gl.Char),
			X:      g.plans[i].Rect.Left,
			Y:      g.plans[i].Rect.Top,
			Width:  gl.Grid.Width(),
			Height: gl.Grid.Height(),
			Offset: offset,
			Size:   len(gl.Packed),
		}
		if max(info.X, info.Y, info.Width, info.Height) > maxDescriptorValue {
			return fmt.Errorf("%w: %s: %dx%d at (%d,%d) does not fit the descriptor",
				bitmap.ErrInvalidArgument, charLabel(gl.Char), info.Width, info.Height, info.X, info.Y)
		}
		g.config.DebugPrint(fmt.Sprintf("%s: %dx%d, %d bytes at %d",
			charLabel(gl.Char), info.Width, info.Height, info.Size, info.Offset))
		g.infos = append(g.infos, info)
		g.data = append(g.data, gl.Packed...)
		offset += info.Size
	}
	return nil
}

func (g *generator) createHeader() error {
	var buf bytes.Buffer
	if err := writeHeader(&buf, g.headerData()); err != nil {
		return err
	}
	return g.writeFile(g.config.Name+".h", buf.Bytes())
}

func (g *generator) createBlob() error {
	if g.config.BlobMode == NoBlob {
		return nil
	}

	data := g.data
	filename := g.config.Name + ".bin"
	if g.config.BlobMode == GzipBlob {
		var compressed bytes.Buffer
		gzw := gzip.NewWriter(&compressed)
		if _, err := gzw.Write(data); err != nil {
			return err
		}
		if err := gzw.Close(); err != nil {
			return err
		}
		g.config.DebugPrint(fmt.Sprintf("compressed %d bytes into %d", len(data), compressed.Len()))
		data = compressed.Bytes()
		filename += ".gz"
	}

	return g.writeFile(filename, data)
}

func (g *generator) writeFile(name string, data []byte) error {
	path := filepath.Join(g.config.OutDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	g.files = append(g.files, path)
	return nil
}

func (g *generator) glyphOptions() glyph.Options {
	return glyph.Options{
		Pack:    g.config.Pack,
		Workers: g.config.Workers,
	}
}

func charLabel(ch rune) string {
	return fmt.Sprintf("%U(%q)", ch, ch)
}

func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
