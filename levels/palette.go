package levels

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidPalette = errors.New("levels: invalid palette")

// TileClass says which folder a placed prefab belongs to.
type TileClass string

const (
	Terrain TileClass = "terrain"
	Prop    TileClass = "prop"
)

// Color is an RGB(A) color written as "#rrggbb" or "#rrggbbaa" in YAML.
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor reads "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	var out [4]uint8
	out[3] = 255
	for i := 0; i < len(hex)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color format: %s", s)
		}
		out[i] = v
	}
	return Color{color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}}, nil
}

// Entry maps one color to the prefab spawned for it.
type Entry struct {
	Color  Color     `yaml:"color"`
	Prefab string    `yaml:"prefab"`
	Class  TileClass `yaml:"class"`
}

type Palette struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`

	lookup map[color.NRGBA]int
}

// ParsePalette decodes and validates a palette.
func ParsePalette(data []byte) (*Palette, error) {
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("levels: unmarshal palette: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate forces every entry opaque, defaults an empty class to Terrain
// and indexes the colors. Only opaque pixels can match an entry. When two
// entries share a color the first one wins.
func (p *Palette) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil palette", ErrInvalidPalette)
	}
	p.lookup = make(map[color.NRGBA]int, len(p.Entries))
	for i := range p.Entries {
		e := &p.Entries[i]
		e.Color.A = 255
		if e.Prefab == "" {
			return fmt.Errorf("%w: entry %d (%s) has no prefab", ErrInvalidPalette, i, e.Color)
		}
		switch e.Class {
		case "":
			e.Class = Terrain
		case Terrain, Prop:
		default:
			return fmt.Errorf("%w: entry %d has unknown class %q", ErrInvalidPalette, i, e.Class)
		}
		if _, dup := p.lookup[e.Color.NRGBA]; !dup {
			p.lookup[e.Color.NRGBA] = i
		}
	}
	return nil
}

// Lookup finds the entry for c.
func (p *Palette) Lookup(c color.Color) (Entry, bool) {
	if p == nil || c == nil {
		return Entry{}, false
	}
	if p.lookup == nil {
		if err := p.Validate(); err != nil {
			return Entry{}, false
		}
	}
	i, ok := p.lookup[color.NRGBAModel.Convert(c).(color.NRGBA)]
	if !ok {
		return Entry{}, false
	}
	return p.Entries[i], true
}
