package editor

import (
	"github.com/duskglow/loupe/engine/scene"
)

// UndoManager tracks the inverse of every applied command on two stacks.
// Every fresh mutation clears the redo stack, so redo history never diverges
// from what actually happened.
//
// The manager is not safe for concurrent use; editing happens on the frame
// thread.
type UndoManager struct {
	undoStack []Command
	redoStack []Command
}

// NewUndoManager creates an empty undo manager.
//
// Returns:
//   - *UndoManager: the manager with empty undo and redo history
func NewUndoManager() *UndoManager {
	return &UndoManager{}
}

// Apply runs the command against the scene and records its inverse for undo.
// The redo stack is cleared: a fresh mutation invalidates any redo history.
//
// Parameters:
//   - s: the resident imported scene
//   - cmd: the command to apply
//
// Returns:
//   - error: the command's application error; history is untouched on failure
func (m *UndoManager) Apply(s *scene.ImportedScene, cmd Command) error {
	inverse, err := cmd.Apply(s)
	if err != nil {
		return err
	}
	m.redoStack = m.redoStack[:0]
	m.undoStack = append(m.undoStack, inverse)
	return nil
}

// CanUndo reports whether there is anything to undo.
func (m *UndoManager) CanUndo() bool {
	return len(m.undoStack) > 0
}

// CanRedo reports whether there is anything to redo.
func (m *UndoManager) CanRedo() bool {
	return len(m.redoStack) > 0
}

// Undo reverts the most recent mutation and pushes its inverse onto the redo
// stack. A no-op when the undo stack is empty.
//
// Returns:
//   - error: the inverse command's application error
func (m *UndoManager) Undo(s *scene.ImportedScene) error {
	if len(m.undoStack) == 0 {
		return nil
	}
	cmd := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	inverse, err := cmd.Apply(s)
	if err != nil {
		return err
	}
	m.redoStack = append(m.redoStack, inverse)
	return nil
}

// Redo re-applies the most recently undone mutation and pushes its inverse
// back onto the undo stack. A no-op when the redo stack is empty.
//
// Returns:
//   - error: the redone command's application error
func (m *UndoManager) Redo(s *scene.ImportedScene) error {
	if len(m.redoStack) == 0 {
		return nil
	}
	cmd := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]

	inverse, err := cmd.Apply(s)
	if err != nil {
		return err
	}
	m.undoStack = append(m.undoStack, inverse)
	return nil
}
