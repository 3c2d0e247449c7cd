package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ralt/wpkgedit/internal/models"
)

func pkgWithID(id string) *models.Package {
	p := models.NewPackage()
	p.ID = id
	return p
}

func TestUndoRedo(t *testing.T) {
	h := New(10)
	for i := 1; i <= 3; i++ {
		h.Checkpoint(pkgWithID(fmt.Sprint(i)), fmt.Sprintf("text %d", i), fmt.Sprintf("edit %d", i))
	}

	s, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if s.Package.ID != "2" || s.Text != "text 2" {
		t.Errorf("Undo() = %q/%q, want 2/text 2", s.Package.ID, s.Text)
	}

	s, err = h.Redo()
	if err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if s.Package.ID != "3" {
		t.Errorf("Redo() package = %q, want 3", s.Package.ID)
	}

	if _, err := h.Redo(); !errors.Is(err, ErrCannotRedo) {
		t.Errorf("Redo() at top error = %v, want ErrCannotRedo", err)
	}
}

func TestCheckpointTruncatesRedo(t *testing.T) {
	h := New(10)
	for i := 1; i <= 3; i++ {
		h.Checkpoint(pkgWithID(fmt.Sprint(i)), "", "")
	}
	for i := 0; i < 2; i++ {
		if _, err := h.Undo(); err != nil {
			t.Fatalf("Undo() error = %v", err)
		}
	}

	h.Checkpoint(pkgWithID("4"), "", "")

	_, err := h.Redo()
	if !errors.Is(err, ErrCannotRedo) {
		t.Fatalf("Redo() error = %v, want ErrCannotRedo", err)
	}
	if err.Error() != "cannot redo further" {
		t.Errorf("Redo() message = %q", err.Error())
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestUndoAtBottom(t *testing.T) {
	h := New(10)
	if _, err := h.Undo(); !errors.Is(err, ErrCannotUndo) {
		t.Errorf("Undo() on empty history error = %v, want ErrCannotUndo", err)
	}

	h.Checkpoint(pkgWithID("1"), "", "")
	if _, err := h.Undo(); !errors.Is(err, ErrCannotUndo) {
		t.Errorf("Undo() at bottom error = %v, want ErrCannotUndo", err)
	}
	if h.Position() != 0 {
		t.Errorf("Position() = %d, want 0", h.Position())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	h := New(3)
	for i := 1; i <= 5; i++ {
		h.Checkpoint(pkgWithID(fmt.Sprint(i)), "", fmt.Sprint(i))
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if h.Position() != 2 {
		t.Errorf("Position() = %d, want 2", h.Position())
	}

	h.Undo()
	s, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if s.Package.ID != "3" || s.Label != "3" {
		t.Errorf("oldest reachable snapshot = %q/%q, want 3/3", s.Package.ID, s.Label)
	}
	if _, err := h.Undo(); !errors.Is(err, ErrCannotUndo) {
		t.Errorf("Undo() past oldest error = %v, want ErrCannotUndo", err)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	h := New(10)
	p := pkgWithID("a")
	p.Variables = []models.Variable{{Name: "V", Value: "1"}}
	h.Checkpoint(p, "", "")
	h.Checkpoint(pkgWithID("b"), "", "")

	p.Variables[0].Value = "changed"

	s, _ := h.Undo()
	if s.Package.Variables[0].Value != "1" {
		t.Errorf("stored snapshot changed through caller: %q", s.Package.Variables[0].Value)
	}

	s.Package.Variables[0].Value = "again"
	h.Redo()
	s, _ = h.Undo()
	if s.Package.Variables[0].Value != "1" {
		t.Errorf("stored snapshot changed through restored copy: %q", s.Package.Variables[0].Value)
	}
}

func TestClear(t *testing.T) {
	h := New(0)
	h.Checkpoint(pkgWithID("1"), "", "")
	h.Clear()
	if h.Len() != 0 || h.Position() != -1 || h.CanUndo() || h.CanRedo() {
		t.Error("Clear() should empty the history")
	}
}
