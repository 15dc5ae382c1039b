package petimage

import (
	"strings"

	"github.com/fetchpet/fetchpet-widget/pkg/components"
	"github.com/fetchpet/fetchpet-widget/pkg/widget"
)

// sprites holds the text fallback per variant. Only the default pet has
// one; other variants use it too.
var sprites = map[widget.PetImage][]string{
	widget.PetDefault: {
		` /\_/\ `,
		`( o.o )`,
		` > ^ < `,
	},
}

// Sprite returns the text pet for v centered in width x height cells. Rows
// that do not fit are dropped from the bottom.
func Sprite(v widget.PetImage, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	art, ok := sprites[v]
	if !ok {
		art = sprites[widget.PetDefault]
	}

	top := (height - len(art)) / 2
	if top < 0 {
		top = 0
	}
	lines := make([]string, 0, height)
	for i := 0; i < top; i++ {
		lines = append(lines, strings.Repeat(" ", width))
	}
	for _, row := range art {
		if len(lines) == height {
			break
		}
		lines = append(lines, components.PadCenter(components.Truncate(row, width), width))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
