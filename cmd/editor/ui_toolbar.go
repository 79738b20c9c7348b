package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/marblebounce/session"
)

var toolbarTextColor = &widget.ButtonTextColor{
	Idle:     color.Black,
	Hover:    color.Black,
	Pressed:  color.RGBA{20, 60, 160, 255},
	Disabled: color.Gray{Y: 110},
}

// newToolbarButton builds a button with the shared toolbar look.
func newToolbarButton(theme *widget.Theme, face *text.Face, label string, minW int, opts ...widget.ButtonOpt) *widget.Button {
	base := []widget.ButtonOpt{
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, face, toolbarTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(minW, 40)),
	}
	return widget.NewButton(append(base, opts...)...)
}

// buildToolBar lays out one toggle button per placement tool followed by the
// undo and redo buttons.
func buildToolBar(theme *widget.Theme, face *text.Face, onToolSelected func(tool session.Tool), onUndo, onRedo func(), initialTool session.Tool) (*widget.Container, *ToolBar) {
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{214, 222, 236, 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(6)),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)

	tb := &ToolBar{tools: session.Tools()}
	elements := make([]widget.RadioGroupElement, 0, len(tb.tools))
	for _, tool := range tb.tools {
		btn := newToolbarButton(theme, face, tool.String(), 56, widget.ButtonOpts.ToggleMode())
		tb.buttons = append(tb.buttons, btn)
		elements = append(elements, btn)
		bar.AddChild(btn)
	}

	tb.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if tb.suppress || onToolSelected == nil {
				return
			}
			if tool, ok := tb.toolFor(args.Active); ok {
				onToolSelected(tool)
			}
		}),
	)

	clicked := func(fn func()) widget.ButtonOpt {
		return widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			if fn != nil {
				fn()
			}
		})
	}
	tb.undoBtn = newToolbarButton(theme, face, "Undo", 130, clicked(onUndo))
	tb.redoBtn = newToolbarButton(theme, face, "Redo", 130, clicked(onRedo))
	bar.AddChild(tb.undoBtn)
	bar.AddChild(tb.redoBtn)

	tb.SetTool(initialTool)
	tb.SetHistory("", "")
	return bar, tb
}
