// Package buffer holds the raw document text with line/column conversion.
//
// Offsets are byte offsets into the text. Points use 1-based lines, the
// numbering XML parsers report errors with, and 0-based byte columns.
package buffer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrLineOutOfRange   = errors.New("line out of range")
)

// Point is a line and column position.
type Point struct {
	Line   int // 1-based
	Column int // 0-based byte offset within the line
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Buffer is the text of one document.
type Buffer struct {
	text       string
	lineStarts []int
}

// New creates a buffer holding text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// Text returns the whole text.
func (b *Buffer) Text() string {
	return b.text
}

// Len returns the text length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// SetText replaces the whole text.
func (b *Buffer) SetText(text string) {
	b.text = text
	b.indexLines()
}

// Replace replaces text[start:end] with text.
func (b *Buffer) Replace(start, end int, text string) error {
	if start < 0 || start > end || end > len(b.text) {
		return fmt.Errorf("%w: [%d, %d) in %d bytes", ErrRangeInvalid, start, end, len(b.text))
	}
	b.SetText(b.text[:start] + text + b.text[end:])
	return nil
}

// LineCount returns the number of lines; an empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// OffsetToPoint converts a byte offset to a point.
func (b *Buffer) OffsetToPoint(offset int) (Point, error) {
	if offset < 0 || offset > len(b.text) {
		return Point{}, ErrOffsetOutOfRange
	}
	// Index of the last line starting at or before offset
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	return Point{Line: line + 1, Column: offset - b.lineStarts[line]}, nil
}

// PointToOffset converts a point to a byte offset. Columns past the end of
// the line are clamped to the line end.
func (b *Buffer) PointToOffset(p Point) (int, error) {
	start, end, err := b.LineRange(p.Line)
	if err != nil {
		return 0, err
	}
	if p.Column < 0 {
		return 0, ErrOffsetOutOfRange
	}
	return min(start+p.Column, end), nil
}

// LineRange returns the offsets of a line, excluding its newline.
func (b *Buffer) LineRange(line int) (start, end int, err error) {
	if line < 1 || line > len(b.lineStarts) {
		return 0, 0, fmt.Errorf("%w: %d", ErrLineOutOfRange, line)
	}
	start = b.lineStarts[line-1]
	end = len(b.text)
	if line < len(b.lineStarts) {
		end = b.lineStarts[line] - 1
	}
	if end > start && b.text[end-1] == '\r' {
		end--
	}
	return start, end, nil
}

// Line returns the text of a line without its line ending.
func (b *Buffer) Line(line int) (string, error) {
	start, end, err := b.LineRange(line)
	if err != nil {
		return "", err
	}
	return b.text[start:end], nil
}

func (b *Buffer) indexLines() {
	b.lineStarts = append(b.lineStarts[:0], 0)
	for i := 0; i < len(b.text); {
		idx := strings.IndexByte(b.text[i:], '\n')
		if idx < 0 {
			break
		}
		i += idx + 1
		b.lineStarts = append(b.lineStarts, i)
	}
}
