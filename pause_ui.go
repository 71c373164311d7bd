package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/kzzzt/menu"
	"golang.org/x/image/font/basicfont"
)

var (
	pauseTextColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	pauseSelectedColor = color.NRGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xff}
)

// PauseUI renders a menu.Pause. The model owns all navigation; the UI only
// rebuilds its labels when what the model shows changes.
type PauseUI struct {
	pause *menu.Pause
	ui    *ebitenui.UI
	panel *widget.Container
	face  ebtext.Face
	shown string
}

func NewPauseUI(p *menu.Pause, screenW, screenH int) *PauseUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(screenW/2, screenH/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &PauseUI{
		pause: p,
		ui:    &ebitenui.UI{Container: root},
		panel: panel,
		face:  face,
	}
}

// pauseLabels is what the menu shows for p right now: a title, the items of
// the current screen and the selected item's index.
func pauseLabels(p *menu.Pause) (string, []string, int) {
	switch p.Screen() {
	case menu.VolumeScreen:
		return "Volume", p.VolumeItems(), int(p.Volume())
	case menu.SaveScreen:
		return "Save Game", p.SlotItems(), p.SaveSlot()
	}
	return "Paused", p.MainItems(), int(p.MainItem())
}

func (u *PauseUI) Update() {
	title, items, selected := pauseLabels(u.pause)
	key := fmt.Sprint(title, items, selected)
	if key != u.shown {
		u.rebuild(title, items, selected)
		u.shown = key
	}
	u.ui.Update()
}

func (u *PauseUI) Draw(screen *ebiten.Image) {
	u.ui.Draw(screen)
}

func (u *PauseUI) rebuild(title string, items []string, selected int) {
	u.panel.RemoveChildren()
	u.panel.AddChild(u.label(title, pauseTextColor))
	for i, item := range items {
		clr := pauseTextColor
		if i == selected {
			clr = pauseSelectedColor
			item = "> " + item
		}
		u.panel.AddChild(u.label(item, clr))
	}
}

func (u *PauseUI) label(s string, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, &u.face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}
