package levels

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed maps/*.png palettes/*.yaml
var LevelsFS embed.FS

const DefaultPalette = "default"

// MapNames lists the embedded maps in play order, which is alphabetical.
func MapNames() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, "maps")
	if err != nil {
		return nil, fmt.Errorf("levels: list maps: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}

func LoadMapFromFS(name string) (image.Image, error) {
	data, err := fs.ReadFile(LevelsFS, path.Join("maps", withExt(name, ".png")))
	if err != nil {
		return nil, fmt.Errorf("levels: read map: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

func LoadPaletteFromFS(name string) (*Palette, error) {
	data, err := fs.ReadFile(LevelsFS, path.Join("palettes", withExt(name, ".yaml")))
	if err != nil {
		return nil, fmt.Errorf("levels: read palette: %w", err)
	}
	return ParsePalette(data)
}

// LoadPlanFromFS builds the plan of an embedded map with an embedded palette.
func LoadPlanFromFS(mapName, paletteName string) (*Plan, error) {
	img, err := LoadMapFromFS(mapName)
	if err != nil {
		return nil, err
	}
	palette, err := LoadPaletteFromFS(paletteName)
	if err != nil {
		return nil, err
	}
	return BuildPlan(img, palette)
}

func withExt(name, ext string) string {
	if path.Ext(name) == "" {
		return name + ext
	}
	return name
}
