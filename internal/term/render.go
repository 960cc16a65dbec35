package term

import (
	"github.com/treykane/flowbox/internal/canvas"
)

// Blocks collects the placed chips as canvas blocks. Chips that were never
// placed are skipped.
func Blocks(chips []*Chip) []canvas.Block {
	blocks := make([]canvas.Block, 0, len(chips))
	for _, c := range chips {
		x, y, ok := c.Position()
		if !ok {
			continue
		}
		blocks = append(blocks, canvas.Block{X: x, Y: y, View: c.View()})
	}
	return blocks
}

// Render draws the placed chips into a width x height frame.
func Render(chips []*Chip, width, height int) string {
	return canvas.Compose(width, height, Blocks(chips))
}
