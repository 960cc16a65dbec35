// Package export draws a finished layout as a PNG image. Every cell becomes
// a CellWidth x CellHeight pixel rectangle.
package export

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/treykane/flowbox/internal/flow"
	"github.com/treykane/flowbox/internal/logging"
)

var log = logging.New("export")

// Box is one placed chip in cell units.
type Box struct {
	Label               string
	X, Y, Width, Height int
	Weighted            bool
}

// Options control the drawing.
type Options struct {
	CellWidth  float64
	CellHeight float64
	Margin     float64
	Background color.Color
	Fill       color.Color
	// WeightedFill is used for boxes that share leftover space.
	WeightedFill color.Color
	Stroke       color.Color
	Text         color.Color
}

// DefaultOptions sizes cells for the built-in 7x13 font.
func DefaultOptions() Options {
	return Options{
		CellWidth:    8,
		CellHeight:   16,
		Margin:       8,
		Background:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Fill:         color.RGBA{R: 214, G: 228, B: 255, A: 255},
		WeightedFill: color.RGBA{R: 214, G: 245, B: 214, A: 255},
		Stroke:       color.RGBA{R: 64, G: 64, B: 64, A: 255},
		Text:         color.RGBA{R: 16, G: 16, B: 16, A: 255},
	}
}

// Boxes converts a layout result. label returns the text drawn for the box
// at an input index; weighted reports whether it shares leftover space.
func Boxes(res flow.Result, label func(index int) string, weighted func(index int) bool) []Box {
	boxes := make([]Box, len(res.Placements))
	for i, pl := range res.Placements {
		b := Box{Label: pl.Key, X: pl.X, Y: pl.Y, Width: pl.Width, Height: pl.Height}
		if label != nil {
			b.Label = label(pl.Index)
		}
		if weighted != nil {
			b.Weighted = weighted(pl.Index)
		}
		boxes[i] = b
	}
	return boxes
}

// Draw renders boxes on a width x height cell grid.
func Draw(width, height int, boxes []Box, opts Options) image.Image {
	dc := gg.NewContext(
		int(float64(width)*opts.CellWidth+2*opts.Margin),
		int(float64(height)*opts.CellHeight+2*opts.Margin),
	)
	dc.SetColor(opts.Background)
	dc.Clear()

	dc.SetLineWidth(1)
	for _, b := range boxes {
		x := opts.Margin + float64(b.X)*opts.CellWidth
		y := opts.Margin + float64(b.Y)*opts.CellHeight
		w := float64(b.Width) * opts.CellWidth
		h := float64(b.Height) * opts.CellHeight
		if w <= 2 || h <= 2 {
			continue
		}

		dc.DrawRectangle(x+1, y+1, w-2, h-2)
		if b.Weighted {
			dc.SetColor(opts.WeightedFill)
		} else {
			dc.SetColor(opts.Fill)
		}
		dc.FillPreserve()
		dc.SetColor(opts.Stroke)
		dc.Stroke()

		if b.Label != "" {
			dc.SetColor(opts.Text)
			dc.DrawStringWrapped(b.Label, x+w/2, y+h/2, 0.5, 0.5, w-4, 1, gg.AlignCenter)
		}
	}
	return dc.Image()
}

// WritePNG draws boxes and saves the image at path.
func WritePNG(path string, width, height int, boxes []Box, opts Options) error {
	img := Draw(width, height, boxes, opts)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	log.Info("wrote png", "path", path, "boxes", len(boxes))
	return nil
}
