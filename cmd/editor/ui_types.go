package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/marblebounce/session"
)

// ToolBar contains the radio-group state for the tool buttons and the history buttons.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	tools   []session.Tool

	undoBtn *widget.Button
	redoBtn *widget.Button

	// suppress keeps programmatic selection from re-entering the tool handler.
	suppress bool
}

func (tb *ToolBar) SetTool(t session.Tool) {
	if tb == nil || tb.group == nil {
		return
	}
	for i, tool := range tb.tools {
		if tool == t {
			tb.suppress = true
			tb.group.SetActive(tb.buttons[i])
			tb.suppress = false
			return
		}
	}
}

func (tb *ToolBar) toolFor(el widget.RadioGroupElement) (session.Tool, bool) {
	for i, b := range tb.buttons {
		if widget.RadioGroupElement(b) == el {
			return tb.tools[i], true
		}
	}
	return 0, false
}

// SetHistory updates the undo and redo button labels.
func (tb *ToolBar) SetHistory(undo, redo string) {
	if tb == nil {
		return
	}
	setButtonLabel(tb.undoBtn, historyLabel("Undo", undo))
	setButtonLabel(tb.redoBtn, historyLabel("Redo", redo))
	if tb.undoBtn != nil {
		tb.undoBtn.GetWidget().Disabled = undo == ""
	}
	if tb.redoBtn != nil {
		tb.redoBtn.GetWidget().Disabled = redo == ""
	}
}

func historyLabel(verb, label string) string {
	if label == "" {
		return verb
	}
	return verb + " " + label
}

func setButtonLabel(b *widget.Button, label string) {
	if b == nil {
		return
	}
	if text := b.Text(); text != nil {
		text.Label = label
	}
}

// AttrPanel shows the selection's name and one input per editable attribute.
type AttrPanel struct {
	title  *widget.Text
	fields *widget.Container
	status *widget.Text

	// shown is the key of the selection the fields were built for.
	shown string
}

func (p *AttrPanel) SetStatus(msg string) {
	if p == nil || p.status == nil {
		return
	}
	p.status.Label = msg
}
