package main

import (
	"bytes"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/marblebounce/session"
	"golang.org/x/image/font/gofont/goregular"
)

const toolbarHeight = 56

func loadFace(size float64) text.Face {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	return &text.GoTextFace{Source: src, Size: size}
}

// BuildEditorUI assembles the tool bar along the top edge and the attribute
// panel along the right edge.
func BuildEditorUI(
	onToolSelected func(tool session.Tool),
	onUndo func(),
	onRedo func(),
	initialTool session.Tool,
) (*ebitenui.UI, *ToolBar, *AttrPanel, *text.Face) {
	face := loadFace(14)
	theme := newEditorTheme(&face)

	bar, toolBar := buildToolBar(theme, &face, onToolSelected, onUndo, onRedo, initialTool)
	bar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}

	panel, attrPanel := buildAttrPanel(&face)
	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	root.AddChild(bar)

	return &ebitenui.UI{Container: root, PrimaryTheme: theme}, toolBar, attrPanel, &face
}
