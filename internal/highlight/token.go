// Package highlight provides lexical highlighting of WPKG XML text.
package highlight

// Category represents the lexical class of a span.
type Category uint8

// Span categories.
const (
	CategoryDeclaration Category = iota
	CategoryComment
	CategoryTag
	CategoryAttribute
	CategoryAttributeValue

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryDeclaration:    "declaration",
	CategoryComment:        "comment",
	CategoryTag:            "tag",
	CategoryAttribute:      "attribute",
	CategoryAttributeValue: "attributevalue",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < categoryCount {
		return categoryNames[c]
	}
	return "unknown"
}

// Span is a highlighted range of the text.
// Offsets are byte offsets; End is exclusive.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns true if the offset is within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Marker holds the single error line reported by validation.
// It is managed independently of the syntax spans.
type Marker struct {
	line int
}

// Mark sets the error line (1-based). Lines below 1 clear the marker.
func (m *Marker) Mark(line int) {
	if line < 1 {
		line = 0
	}
	m.line = line
}

// Clear removes the error line.
func (m *Marker) Clear() {
	m.line = 0
}

// Line returns the marked line, if any.
func (m *Marker) Line() (int, bool) {
	return m.line, m.line > 0
}
