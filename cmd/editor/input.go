package main

import (
	"time"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/marblebounce/common"
	"github.com/milk9111/marblebounce/session"
)

var pointerButtons = []struct {
	mouse  ebiten.MouseButton
	button session.Button
}{
	{ebiten.MouseButtonLeft, session.ButtonPrimary},
	{ebiten.MouseButtonRight, session.ButtonSecondary},
	{ebiten.MouseButtonMiddle, session.ButtonMiddle},
}

// pointerEvents converts this frame's mouse state into gesture events.
// Presses over the UI panels are ignored; moves and releases are always
// reported so a drag that leaves the board still ends.
func pointerEvents(c *Canvas, lastX, lastY int) []session.PointerEvent {
	mx, my := ebiten.CursorPosition()
	now := time.Now()
	base := session.PointerEvent{
		Pos:         c.ToBoard(mx, my),
		Screen:      common.Pt(float64(mx), float64(my)),
		PrimaryHeld: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Time:        now,
	}

	var events []session.PointerEvent
	if mx != lastX || my != lastY {
		ev := base
		ev.Kind = session.PointerMove
		events = append(events, ev)
	}
	for _, b := range pointerButtons {
		if inpututil.IsMouseButtonJustPressed(b.mouse) && !ebuiinput.UIHovered && c.Contains(mx, my) {
			ev := base
			ev.Kind = session.PointerPress
			ev.Button = b.button
			events = append(events, ev)
		}
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			ev := base
			ev.Kind = session.PointerRelease
			ev.Button = b.button
			events = append(events, ev)
		}
	}
	return events
}

// keyEvents reports the gesture keys pressed this frame.
func keyEvents() []session.KeyEvent {
	keys := []struct {
		key ebiten.Key
		k   session.Key
	}{
		{ebiten.KeyEscape, session.KeyEscape},
		{ebiten.KeyEnter, session.KeyEnter},
		{ebiten.KeyDelete, session.KeyDelete},
		{ebiten.KeyBackspace, session.KeyBackspace},
	}
	var events []session.KeyEvent
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			events = append(events, session.KeyEvent{Key: k.k})
		}
	}
	return events
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}
