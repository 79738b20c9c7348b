package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/thing"
)

const attrPanelWidth = 220

func buildAttrPanel(fontFace *text.Face) (*widget.Container, *AttrPanel) {
	labelColor := &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(attrPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(10)),
			),
		),
	)

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Attributes", fontFace, labelColor),
	))
	title := widget.NewText(
		widget.TextOpts.Text("", fontFace, color.RGBA{255, 200, 80, 255}),
	)
	panel.AddChild(title)

	fields := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)
	panel.AddChild(fields)

	status := widget.NewText(
		widget.TextOpts.Text("", fontFace, color.RGBA{200, 200, 200, 255}),
	)
	panel.AddChild(status)

	return panel, &AttrPanel{title: title, fields: fields, status: status}
}

// Show rebuilds the fields for a new selection. key identifies the selection so
// an unchanged selection keeps its inputs (and whatever the user is typing).
func (p *AttrPanel) Show(fontFace *text.Face, key, title string, names []string, values thing.Attrs, onSubmit func(attr, text string)) {
	if p == nil || p.shown == key {
		return
	}
	p.shown = key
	p.title.Label = title
	p.fields.RemoveChildren()

	for _, name := range names {
		attr := name
		p.fields.AddChild(widget.NewLabel(
			widget.LabelOpts.Text(attr, fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
		))
		input := widget.NewTextInput(
			widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(180, 28)),
			widget.TextInputOpts.Image(&widget.TextInputImage{
				Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
				Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
			}),
			widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
			widget.TextInputOpts.Face(fontFace),
			widget.TextInputOpts.SubmitOnEnter(true),
			widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
				if onSubmit != nil {
					onSubmit(attr, args.InputText)
				}
			}),
		)
		input.SetText(codec.FormatNumber(values[attr]))
		p.fields.AddChild(input)
	}
	p.fields.RequestRelayout()
}

// Invalidate forces the next Show to rebuild, e.g. after undo changed the values.
func (p *AttrPanel) Invalidate() {
	if p != nil {
		p.shown = ""
	}
}
