package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/quasilyte/glyphpack"
)

const defaultCharacters = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

func main() {
	var charsFile string
	var rotation int
	var hpad, vpad string
	var bitOrder, layout string
	var blob string
	var preview string
	var debug bool
	var config glyphpack.Config
	flag.StringVar(&config.FontFile, "font", "",
		"a path to a TTF/OTF font; if empty, Go Mono is used")
	flag.Float64Var(&config.FontSize, "size", 16,
		"a font size in pixels per em")
	flag.StringVar(&config.ImageDir, "image-dir", "",
		"a folder with <codepoint>.png glyph images to use instead of a font")
	flag.StringVar(&config.Characters, "chars", defaultCharacters,
		"characters to generate")
	flag.StringVar(&charsFile, "chars-file", "",
		"a file to read characters from; overrides -chars")
	flag.BoolVar(&config.GenerateSpace, "space", false,
		"whether to generate the space character")
	flag.IntVar(&rotation, "rotate", 0,
		"a clockwise glyph rotation in degrees: 0, 90, 180, or 270")
	flag.StringVar(&hpad, "hpad", "tightest",
		"horizontal padding removal (`none`, `tightest`, or `fixed`)")
	flag.StringVar(&vpad, "vpad", "fixed",
		"vertical padding removal (`none`, `tightest`, or `fixed`)")
	flag.StringVar(&bitOrder, "bit-order", "msb",
		"a bit order inside a byte (`msb` or `lsb`)")
	flag.StringVar(&layout, "layout", "row",
		"a byte layout (`row` or `column`)")
	flag.StringVar(&blob, "blob", "none",
		"also write raw bitmap data (`none`, `raw`, or `gzip`)")
	flag.StringVar(&preview, "preview", "",
		"a PNG file path to render the packed glyphs to")
	flag.StringVar(&config.OutDir, "out-dir", ".",
		"where to put result files")
	flag.StringVar(&config.Name, "name", "font",
		"a result C identifier prefix and a file basename")
	flag.IntVar(&config.Workers, "workers", 0,
		"max number of glyphs processed in parallel; 0 means the number of CPUs")
	flag.BoolVar(&debug, "v", false,
		"whether to enable verbose output")
	flag.Parse()

	if charsFile != "" {
		data, err := os.ReadFile(charsFile)
		if err != nil {
			panic(fmt.Sprintf("error: %v", err))
		}
		config.Characters = string(data)
	}
	if config.ImageDir != "" && !isFlagSet("chars") && charsFile == "" {
		config.Characters = ""
	}

	switch rotation {
	case 0:
		config.Rotation = glyphpack.Rotate0
	case 90:
		config.Rotation = glyphpack.Rotate90
	case 180:
		config.Rotation = glyphpack.Rotate180
	case 270:
		config.Rotation = glyphpack.Rotate270
	default:
		panic(fmt.Sprintf("unsupported rotate: %d", rotation))
	}

	config.Padding.Horizontal = parsePadding("hpad", hpad)
	config.Padding.Vertical = parsePadding("vpad", vpad)

	switch bitOrder {
	case "msb", "":
		config.Pack.BitOrder = glyphpack.MsbFirst
	case "lsb":
		config.Pack.BitOrder = glyphpack.LsbFirst
	default:
		panic(fmt.Sprintf("unsupported bit-order: %q", bitOrder))
	}

	switch layout {
	case "row", "":
		config.Pack.Layout = glyphpack.RowMajor
	case "column":
		config.Pack.Layout = glyphpack.ColumnMajor
	default:
		panic(fmt.Sprintf("unsupported layout: %q", layout))
	}

	switch blob {
	case "none", "":
		config.BlobMode = glyphpack.NoBlob
	case "raw":
		config.BlobMode = glyphpack.RawBlob
	case "gzip":
		config.BlobMode = glyphpack.GzipBlob
	default:
		panic(fmt.Sprintf("unsupported blob: %q", blob))
	}

	if debug {
		config.DebugPrint = func(message string) {
			fmt.Fprintf(os.Stderr, "info: %s\n", message)
		}
	}

	genResult, err := glyphpack.Generate(config)
	for _, w := range genResult.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	if err != nil {
		panic(fmt.Sprintf("error: %v", err))
	}
	if debug {
		for _, f := range genResult.Files {
			fmt.Fprintf(os.Stderr, "info: wrote %s\n", f)
		}
	}

	if preview != "" {
		if err := writePreview(preview, genResult); err != nil {
			panic(fmt.Sprintf("error: preview: %v", err))
		}
	}
}

func writePreview(path string, result glyphpack.GenerationResult) error {
	img, err := glyphpack.RenderPreview(result, 16)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parsePadding(name, s string) glyphpack.Padding {
	switch s {
	case "none", "":
		return glyphpack.PaddingNone
	case "tightest":
		return glyphpack.PaddingTightest
	case "fixed":
		return glyphpack.PaddingFixed
	default:
		panic(fmt.Sprintf("unsupported %s: %q", name, s))
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
