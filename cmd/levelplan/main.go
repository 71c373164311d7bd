// Command levelplan decodes a pixel map and prints the prefabs it would
// spawn, as YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/kzzzt/levels"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("levelplan", flag.ContinueOnError)
	mapPath := fs.String("map", "", "PNG or BMP map file; empty uses the embedded map named by -level")
	levelName := fs.String("level", "1-1", "embedded map name")
	palettePath := fs.String("palette", "", "palette YAML file; empty uses the embedded default palette")
	copyOut := fs.Bool("copy", false, "also copy the plan to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	plan, err := buildPlan(*mapPath, *levelName, *palettePath)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("levelplan: marshal: %w", err)
	}
	if _, err := stdout.Write(out); err != nil {
		return err
	}

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			return fmt.Errorf("levelplan: clipboard: %w", err)
		}
		<-clipboard.Write(clipboard.FmtText, out)
	}
	return nil
}

func buildPlan(mapPath, levelName, palettePath string) (*levels.Plan, error) {
	var palette *levels.Palette
	if palettePath == "" {
		p, err := levels.LoadPaletteFromFS(levels.DefaultPalette)
		if err != nil {
			return nil, err
		}
		palette = p
	} else {
		data, err := os.ReadFile(palettePath)
		if err != nil {
			return nil, fmt.Errorf("levelplan: read palette: %w", err)
		}
		p, err := levels.ParsePalette(data)
		if err != nil {
			return nil, err
		}
		palette = p
	}

	if mapPath == "" {
		img, err := levels.LoadMapFromFS(levelName)
		if err != nil {
			return nil, err
		}
		return levels.BuildPlan(img, palette)
	}

	f, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("levelplan: open map: %w", err)
	}
	defer f.Close()
	img, err := levels.Decode(f)
	if err != nil {
		return nil, err
	}
	return levels.BuildPlan(img, palette)
}
