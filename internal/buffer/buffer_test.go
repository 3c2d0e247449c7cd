package buffer

import (
	"errors"
	"testing"
)

func TestOffsetPointConversion(t *testing.T) {
	b := New("ab\ncde\n\nf")

	tests := []struct {
		offset int
		point  Point
	}{
		{0, Point{1, 0}},
		{2, Point{1, 2}},
		{3, Point{2, 0}},
		{6, Point{2, 3}},
		{7, Point{3, 0}},
		{8, Point{4, 0}},
		{9, Point{4, 1}},
	}

	for _, tt := range tests {
		got, err := b.OffsetToPoint(tt.offset)
		if err != nil {
			t.Fatalf("OffsetToPoint(%d) error = %v", tt.offset, err)
		}
		if got != tt.point {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.point)
		}

		back, err := b.PointToOffset(tt.point)
		if err != nil {
			t.Fatalf("PointToOffset(%v) error = %v", tt.point, err)
		}
		if back != tt.offset {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, back, tt.offset)
		}
	}

	if _, err := b.OffsetToPoint(10); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("OffsetToPoint(10) error = %v, want ErrOffsetOutOfRange", err)
	}
}

func TestPointToOffsetClampsColumn(t *testing.T) {
	b := New("ab\ncde")
	got, err := b.PointToOffset(Point{Line: 1, Column: 10})
	if err != nil {
		t.Fatalf("PointToOffset error = %v", err)
	}
	if got != 2 {
		t.Errorf("PointToOffset = %d, want 2", got)
	}

	if _, err := b.PointToOffset(Point{Line: 3}); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("PointToOffset(line 3) error = %v, want ErrLineOutOfRange", err)
	}
}

func TestLine(t *testing.T) {
	b := New("first\r\nsecond\n")
	if b.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", b.LineCount())
	}

	for line, want := range map[int]string{1: "first", 2: "second", 3: ""} {
		got, err := b.Line(line)
		if err != nil {
			t.Fatalf("Line(%d) error = %v", line, err)
		}
		if got != want {
			t.Errorf("Line(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestReplace(t *testing.T) {
	b := New("hello world")

	if err := b.Replace(6, 11, "there\nfriend"); err != nil {
		t.Fatalf("Replace error = %v", err)
	}
	if b.Text() != "hello there\nfriend" {
		t.Errorf("Text() = %q", b.Text())
	}
	if b.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", b.LineCount())
	}

	if err := b.Replace(5, 2, ""); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Replace(5, 2) error = %v, want ErrRangeInvalid", err)
	}
	if err := b.Replace(100, 100, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Replace(100, 100) error = %v, want ErrRangeInvalid", err)
	}
}
