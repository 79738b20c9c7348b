package level

// PushCommand records c as the newest edit and clears the redo tail.
// The edit itself must already have been applied.
func (l *Level) PushCommand(c *Command) {
	if c == nil {
		return
	}
	l.undo = append(l.undo, c)
	if l.MaxUndo > 0 && len(l.undo) > l.MaxUndo {
		l.undo = l.undo[len(l.undo)-l.MaxUndo:]
	}
	l.redo = nil
	l.notify(Change{Kind: Pushed, Command: c})
}

// Undo reverts the newest edit. It returns false when there is nothing to undo.
func (l *Level) Undo() bool {
	if len(l.undo) == 0 {
		return false
	}
	c := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	c.Undo.Apply(l)
	l.redo = append(l.redo, c)
	l.dropDeletedSelection()
	l.notify(Change{Kind: Undone, Command: c})
	return true
}

// Redo reapplies the most recently undone edit. It returns false when the redo tail is empty.
func (l *Level) Redo() bool {
	if len(l.redo) == 0 {
		return false
	}
	c := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	c.Redo.Apply(l)
	l.undo = append(l.undo, c)
	l.dropDeletedSelection()
	l.notify(Change{Kind: Redone, Command: c})
	return true
}

func (l *Level) dropDeletedSelection() {
	if l.selected != nil && l.selected.Deleted() {
		l.selected = nil
	}
}

func (l *Level) CanUndo() bool { return len(l.undo) > 0 }

func (l *Level) CanRedo() bool { return len(l.redo) > 0 }

// UndoLabel returns the label of the command Undo would revert.
func (l *Level) UndoLabel() string {
	if len(l.undo) == 0 {
		return ""
	}
	return l.undo[len(l.undo)-1].Label
}

// RedoLabel returns the label of the command Redo would reapply.
func (l *Level) RedoLabel() string {
	if len(l.redo) == 0 {
		return ""
	}
	return l.redo[len(l.redo)-1].Label
}

// UndoStack returns the undo history, oldest first.
func (l *Level) UndoStack() []*Command {
	out := make([]*Command, len(l.undo))
	copy(out, l.undo)
	return out
}

// RedoStack returns the redo tail, the next command to redo last.
func (l *Level) RedoStack() []*Command {
	out := make([]*Command, len(l.redo))
	copy(out, l.redo)
	return out
}
