package editor

import (
	"github.com/milk9111/marblebounce/session"
	"github.com/milk9111/marblebounce/thing"
)

// Option configures an Editor.
type Option func(*Editor)

// WithPresenter sets the presenter used for every visual.
func WithPresenter(p thing.Presenter) Option {
	return func(e *Editor) {
		if p != nil {
			e.presenter = p
		}
	}
}

// WithAutosave sets the hook that receives the encoded level after every change.
func WithAutosave(fn func(doc string)) Option {
	return func(e *Editor) { e.autosave = fn }
}

// WithDispatcher sets how the autosave hook is run. The default starts a goroutine.
func WithDispatcher(fn func(func())) Option {
	return func(e *Editor) {
		if fn != nil {
			e.dispatch = fn
		}
	}
}

func WithThresholds(th session.Thresholds) Option {
	return func(e *Editor) { e.th = th }
}

// WithMaxUndo caps the undo stack. The default of zero keeps every command.
func WithMaxUndo(n int) Option {
	return func(e *Editor) { e.maxUndo = n }
}

// WithHitTolerance sets how far, in board units, a click may miss a thing and still select it.
func WithHitTolerance(d float64) Option {
	return func(e *Editor) { e.tolerance = d }
}
