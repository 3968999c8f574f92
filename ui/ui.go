// Package ui builds the ebitenui widgets shared by the screens.
package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Anchor selects where a panel sits in the window.
type Anchor int

const (
	Center Anchor = iota
	Top
	Bottom
	BottomLeft
	TopLeft
)

var (
	panelColor   = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160}
	idleColor    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	hoverColor   = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	pressedColor = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}
	disabledCol  = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 160}
	textColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	mutedText    = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

// Theme carries the face and images every widget is built from.
type Theme struct {
	Face    ebtext.Face
	Padding int

	button *widget.ButtonImage
	track  *widget.SliderTrackImage
	handle *widget.ButtonImage
	text   *widget.ButtonTextColor
}

func NewTheme(padding int) *Theme {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	return &Theme{
		Face:    goFace,
		Padding: padding,
		button: &widget.ButtonImage{
			Idle:     imageui.NewNineSliceColor(idleColor),
			Hover:    imageui.NewNineSliceColor(hoverColor),
			Pressed:  imageui.NewNineSliceColor(pressedColor),
			Disabled: imageui.NewNineSliceColor(disabledCol),
		},
		track: &widget.SliderTrackImage{
			Idle:     imageui.NewNineSliceColor(idleColor),
			Hover:    imageui.NewNineSliceColor(hoverColor),
			Disabled: imageui.NewNineSliceColor(disabledCol),
		},
		handle: &widget.ButtonImage{
			Idle:     imageui.NewNineSliceColor(color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 255}),
			Hover:    imageui.NewNineSliceColor(color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 255}),
			Pressed:  imageui.NewNineSliceColor(color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 255}),
			Disabled: imageui.NewNineSliceColor(mutedText),
		},
		text: &widget.ButtonTextColor{Idle: textColor, Disabled: mutedText},
	}
}

// NewButton returns a fixed-size text button.
func (t *Theme) NewButton(label string, width, height int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(t.button),
		widget.ButtonOpts.Text(label, &t.Face, t.text),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, height),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

// SetLabel replaces a button's text.
func SetLabel(b *widget.Button, label string) {
	if b == nil {
		return
	}
	if text := b.Text(); text != nil {
		text.Label = label
	}
}

// NewSlider returns a horizontal integer slider over [lo, hi].
func (t *Theme) NewSlider(lo, hi, current, width int, onChange func(int)) *widget.Slider {
	s := widget.NewSlider(
		widget.SliderOpts.Direction(widget.DirectionHorizontal),
		widget.SliderOpts.MinMax(lo, hi),
		widget.SliderOpts.Images(t.track, t.handle),
		widget.SliderOpts.FixedHandleSize(12),
		widget.SliderOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 20),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.SliderOpts.ChangedHandler(func(args *widget.SliderChangedEventArgs) {
			if onChange != nil {
				onChange(args.Current)
			}
		}),
	)
	s.Current = current
	return s
}

func (t *Theme) NewLabel(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &t.Face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// NewPanel returns a vertical row container anchored in the window.
func (t *Theme) NewPanel(anchor Anchor, background bool) *widget.Container {
	opts := []widget.ContainerOpt{
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(t.Padding),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: t.Padding, Bottom: t.Padding, Left: t.Padding, Right: t.Padding}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(anchorData(anchor))),
	}
	if background {
		opts = append(opts, widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)))
	}
	return widget.NewContainer(opts...)
}

func anchorData(a Anchor) widget.AnchorLayoutData {
	d := widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}
	switch a {
	case Top:
		d.VerticalPosition = widget.AnchorLayoutPositionStart
	case Bottom:
		d.VerticalPosition = widget.AnchorLayoutPositionEnd
	case BottomLeft:
		d.HorizontalPosition = widget.AnchorLayoutPositionStart
		d.VerticalPosition = widget.AnchorLayoutPositionEnd
	case TopLeft:
		d.HorizontalPosition = widget.AnchorLayoutPositionStart
		d.VerticalPosition = widget.AnchorLayoutPositionStart
	}
	return d
}

// NewRoot wraps panels in a full-window anchor layout.
func NewRoot(panels ...*widget.Container) *ebitenui.UI {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	for _, p := range panels {
		root.AddChild(p)
	}
	return &ebitenui.UI{Container: root}
}

// SetEnabled toggles whether a widget reacts to input.
func SetEnabled(w widget.HasWidget, enabled bool) {
	if w == nil {
		return
	}
	w.GetWidget().Disabled = !enabled
}
