package fontgen

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/quasilyte/glyphpack/internal/pack"
)

type headerData struct {
	Name       string
	Pack       pack.Config
	CellWidth  int
	CellHeight int
	TotalSize  int
	Glyphs     []headerGlyph
}

type headerGlyph struct {
	GlyphInfo
	Label   string
	Preview []string
	Lines   []string
}

// bytesPerLine keeps the array rows reasonably short.
const bytesPerLine = 12

func (g *generator) headerData() *headerData {
	data := &headerData{
		Name:       g.config.Name,
		Pack:       g.config.Pack,
		CellWidth:  g.cellWidth,
		CellHeight: g.cellHeight,
	}
	for i, gl := range g.glyphs {
		info := g.infos[i]
		label := fmt.Sprintf("%U", gl.Char)
		if info.Name != "" {
			label += " " + info.Name
		}
		data.Glyphs = append(data.Glyphs, headerGlyph{
			GlyphInfo: info,
			Label:     label,
			Preview:   strings.Split(strings.TrimSuffix(gl.Grid.String(), "\n"), "\n"),
			Lines:     hexLines(gl.Packed),
		})
		data.TotalSize += info.Size
	}
	return data
}

func hexLines(data []byte) []string {
	var lines []string
	for len(data) > 0 {
		n := min(len(data), bytesPerLine)
		var buf strings.Builder
		for _, b := range data[:n] {
			fmt.Fprintf(&buf, "0x%02X, ", b)
		}
		lines = append(lines, strings.TrimSuffix(buf.String(), " "))
		data = data[n:]
	}
	return lines
}

func writeHeader(w io.Writer, data *headerData) error {
	return headerTemplate.Execute(w, data)
}

var headerTemplate = template.Must(template.New("header").Parse(`// Code generated by glyphpack. DO NOT EDIT.
//
// Cell size: {{.CellWidth}}x{{.CellHeight}}
// Bit order: {{.Pack.BitOrder}}, layout: {{.Pack.Layout}}

#ifndef {{.Name}}_H
#define {{.Name}}_H

#include <stdint.h>

static const uint8_t {{.Name}}_bitmaps[{{.TotalSize}}] = {
{{- range .Glyphs}}
	// {{.Label}}, {{.Width}}x{{.Height}}
{{- range .Preview}}
	//   {{.}}
{{- end}}
{{- range .Lines}}
	{{.}}
{{- end}}
{{- end}}
};

typedef struct {
	uint32_t value;
	uint16_t x;
	uint16_t y;
	uint16_t width;
	uint16_t height;
	uint32_t offset;
} {{.Name}}_glyph;

static const {{.Name}}_glyph {{.Name}}_glyphs[{{len .Glyphs}}] = {
{{- range .Glyphs}}
	{ {{printf "0x%04X" .Value}}, {{.X}}, {{.Y}}, {{.Width}}, {{.Height}}, {{.Offset}} }, // {{.Label}}
{{- end}}
};

#endif
`))
