package levels

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

const testPalette = `
name: test
entries:
  - color: "#000000"
    prefab: ground
    class: terrain
  - color: "#ff000080"
    prefab: exit_plate
    class: prop
  - color: "#ff0000"
    prefab: duplicate
    class: prop
`

func mustPalette(t *testing.T, src string) *Palette {
	t.Helper()
	p, err := ParsePalette([]byte(src))
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	return p
}

// testMap is 2 wide and 2 high:
//
//	row 0: red, clear
//	row 1: black, blue
func testMap() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(0, 1, color.NRGBA{A: 255})
	img.Set(1, 1, color.NRGBA{B: 255, A: 255})
	return img
}

func TestPaletteForcesOpaqueColors(t *testing.T) {
	p := mustPalette(t, testPalette)

	if p.Entries[1].Color.A != 255 {
		t.Fatalf("palette alpha should be forced to 255, got %d", p.Entries[1].Color.A)
	}
	e, ok := p.Lookup(color.NRGBA{R: 255, A: 255})
	if !ok || e.Prefab != "exit_plate" {
		t.Fatalf("expected the first entry of a duplicated color, got %+v", e)
	}
	if _, ok := p.Lookup(color.NRGBA{R: 255, A: 128}); ok {
		t.Fatalf("translucent pixels must not match")
	}
}

func TestParsePaletteErrors(t *testing.T) {
	cases := map[string]string{
		"missing prefab": "entries:\n  - color: \"#000000\"\n",
		"bad class":      "entries:\n  - color: \"#000000\"\n    prefab: a\n    class: wall\n",
		"bad color":      "entries:\n  - color: \"#00\"\n    prefab: a\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePalette([]byte(src)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := ParsePalette([]byte("entries:\n  - color: \"#000000\"\n"))
	if !errors.Is(err, ErrInvalidPalette) {
		t.Fatalf("expected ErrInvalidPalette, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{"10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got.NRGBA != tt.want {
			t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got.NRGBA, tt.want)
		}
	}
	if _, err := ParseColor("#zzzzzz"); err == nil {
		t.Fatalf("expected error for non-hex color")
	}
}

func TestBuildPlanOrderAndFlip(t *testing.T) {
	plan, err := BuildPlan(testMap(), mustPalette(t, testPalette))
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	want := []Placement{
		{Prefab: "ground", Class: Terrain, X: 0, Y: 0},
		{Prefab: "exit_plate", Class: Prop, X: 0, Y: 1},
	}
	if len(plan.Placements) != len(want) {
		t.Fatalf("expected %d placements, got %+v", len(want), plan.Placements)
	}
	for i := range want {
		if plan.Placements[i] != want[i] {
			t.Fatalf("placement %d: got %+v want %+v", i, plan.Placements[i], want[i])
		}
	}

	if len(plan.Unmatched) != 1 || plan.Unmatched[0].X != 1 || plan.Unmatched[0].Y != 0 {
		t.Fatalf("expected the blue pixel to be unmatched, got %+v", plan.Unmatched)
	}
	if got := plan.Class(Terrain); len(got) != 1 || got[0].Prefab != "ground" {
		t.Fatalf("unexpected terrain %+v", got)
	}
}

func TestBuildPlanRejectsNilInput(t *testing.T) {
	if _, err := BuildPlan(nil, mustPalette(t, testPalette)); err == nil {
		t.Fatalf("expected error for nil image")
	}
	if _, err := BuildPlan(testMap(), nil); !errors.Is(err, ErrInvalidPalette) {
		t.Fatalf("expected ErrInvalidPalette, got %v", err)
	}
}

func TestDecodeFormats(t *testing.T) {
	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, testMap()); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, testMap()); err != nil {
		t.Fatal(err)
	}

	for name, buf := range map[string]*bytes.Buffer{"png": &pngBuf, "bmp": &bmpBuf} {
		t.Run(name, func(t *testing.T) {
			img, err := Decode(buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
				t.Fatalf("unexpected bounds %v", img.Bounds())
			}
		})
	}

	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestEmbeddedSampleLevel(t *testing.T) {
	names, err := MapNames()
	if err != nil {
		t.Fatalf("MapNames: %v", err)
	}
	if len(names) == 0 || names[0] != "1-1" {
		t.Fatalf("expected 1-1 first, got %v", names)
	}

	plan, err := LoadPlanFromFS("1-1", DefaultPalette)
	if err != nil {
		t.Fatalf("LoadPlanFromFS: %v", err)
	}
	if len(plan.Unmatched) != 0 {
		t.Fatalf("sample map has unmatched pixels: %+v", plan.Unmatched)
	}
	if plan.Width != 24 || plan.Height != 9 {
		t.Fatalf("unexpected size %dx%d", plan.Width, plan.Height)
	}
	if got := len(plan.Class(Terrain)); got != 48 {
		t.Fatalf("expected 48 ground tiles, got %d", got)
	}

	var players []Placement
	for _, p := range plan.Placements {
		if p.Prefab == "player" {
			players = append(players, p)
		}
	}
	if len(players) != 1 || players[0].X != 1 || players[0].Y != 2 {
		t.Fatalf("expected one player at (1, 2), got %+v", players)
	}
}
