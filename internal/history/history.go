// Package history keeps bounded undo/redo state as full document snapshots.
//
// Every checkpoint stores a deep copy of the package together with the text
// it was serialized to. Restoring replaces both wholesale.
package history

import (
	"errors"
	"time"

	"github.com/ralt/wpkgedit/internal/models"
)

// Status errors for history operations.
var (
	ErrCannotUndo = errors.New("cannot undo further")
	ErrCannotRedo = errors.New("cannot redo further")
)

// Snapshot is one checkpoint.
type Snapshot struct {
	Package   *models.Package
	Text      string
	Label     string
	Timestamp time.Time
}

// History is a bounded stack of snapshots with a position cursor.
type History struct {
	entries  []Snapshot
	pos      int // index of the current snapshot, -1 when empty
	capacity int
}

// New creates a history keeping at most capacity snapshots.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = models.DefaultHistoryCapacity
	}
	return &History{pos: -1, capacity: capacity}
}

// Checkpoint records pkg and text as the current state. Entries past the
// current position are discarded first.
func (h *History) Checkpoint(pkg *models.Package, text, label string) {
	h.entries = h.entries[:h.pos+1]
	h.entries = append(h.entries, Snapshot{
		Package:   pkg.Clone(),
		Text:      text,
		Label:     label,
		Timestamp: time.Now(),
	})
	h.pos = len(h.entries) - 1

	if len(h.entries) > h.capacity {
		excess := len(h.entries) - h.capacity
		h.entries = h.entries[excess:]
		h.pos -= excess
	}
}

// Undo moves back one snapshot and returns it.
func (h *History) Undo() (Snapshot, error) {
	if !h.CanUndo() {
		return Snapshot{}, ErrCannotUndo
	}
	h.pos--
	return h.current(), nil
}

// Redo moves forward one snapshot and returns it.
func (h *History) Redo() (Snapshot, error) {
	if !h.CanRedo() {
		return Snapshot{}, ErrCannotRedo
	}
	h.pos++
	return h.current(), nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.pos > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.pos < len(h.entries)-1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Position returns the index of the current snapshot, -1 when empty.
func (h *History) Position() int {
	return h.pos
}

// Clear removes all snapshots.
func (h *History) Clear() {
	h.entries = nil
	h.pos = -1
}

// current returns a copy of the snapshot at pos so callers cannot alias
// stored state.
func (h *History) current() Snapshot {
	s := h.entries[h.pos]
	s.Package = s.Package.Clone()
	return s
}
