package levels

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"log"

	_ "golang.org/x/image/bmp"
)

// Placement is one prefab to spawn, in tile coordinates with y growing up.
type Placement struct {
	Prefab string    `yaml:"prefab"`
	Class  TileClass `yaml:"class"`
	X      int       `yaml:"x"`
	Y      int       `yaml:"y"`
}

// Unmatched is an opaque pixel with no palette entry.
type Unmatched struct {
	X     int   `yaml:"x"`
	Y     int   `yaml:"y"`
	Color Color `yaml:"color"`
}

type Plan struct {
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Placements []Placement `yaml:"placements"`
	Unmatched  []Unmatched `yaml:"unmatched,omitempty"`
}

// Class returns the placements of one tile class, in plan order.
func (p *Plan) Class(class TileClass) []Placement {
	if p == nil {
		return nil
	}
	var out []Placement
	for _, pl := range p.Placements {
		if pl.Class == class {
			out = append(out, pl)
		}
	}
	return out
}

// Decode reads a PNG or BMP level map.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("levels: decode map: %w", err)
	}
	if format != "png" && format != "bmp" {
		return nil, fmt.Errorf("levels: unsupported map format %q", format)
	}
	return img, nil
}

// BuildPlan walks img column by column, bottom row first, and maps every
// opaque pixel to its palette entry. Fully transparent pixels are empty
// space. Pixels without an entry are logged and collected in Unmatched.
func BuildPlan(img image.Image, palette *Palette) (*Plan, error) {
	if img == nil {
		return nil, fmt.Errorf("levels: nil map image")
	}
	if err := palette.Validate(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	plan := &Plan{Width: b.Dx(), Height: b.Dy()}
	for x := 0; x < plan.Width; x++ {
		for y := 0; y < plan.Height; y++ {
			// Image rows grow downwards; map rows grow upwards.
			px := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Max.Y-1-y)).(color.NRGBA)
			if px.A == 0 {
				continue
			}
			entry, ok := palette.Lookup(px)
			if !ok {
				log.Printf("levels: no prefab for color %s at (%d, %d)", Color{px}, x, y)
				plan.Unmatched = append(plan.Unmatched, Unmatched{X: x, Y: y, Color: Color{px}})
				continue
			}
			plan.Placements = append(plan.Placements, Placement{Prefab: entry.Prefab, Class: entry.Class, X: x, Y: y})
		}
	}
	return plan, nil
}
