package completion

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownCandidate is returned when accepting a name that was not offered
var ErrUnknownCandidate = errors.New("not a completion candidate")

// Kind is what the cursor is completing
type Kind uint8

const (
	KindNone Kind = iota
	KindElement
	KindAttribute
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindAttribute:
		return "attribute"
	default:
		return "none"
	}
}

// Request is a completion request for the line holding the cursor
type Request struct {
	Line   string
	Column int // byte offset of the cursor within Line
}

// Result describes the completion context and its candidates
type Result struct {
	Kind       Kind
	Element    string // element owning the attribute, for KindAttribute
	Prefix     string
	Start      int // column where Prefix starts
	End        int // cursor column
	Candidates []string
}

// Edit replaces Line[Start:End] with Text and leaves the cursor at Cursor
type Edit struct {
	Start  int
	End    int
	Text   string
	Cursor int
}

// Apply performs the edit on line
func (e Edit) Apply(line string) string {
	return line[:e.Start] + e.Text + line[e.End:]
}

// Unique returns the edit for a single candidate
func (r Result) Unique() (Edit, bool) {
	if len(r.Candidates) != 1 {
		return Edit{}, false
	}
	edit, err := r.Accept(r.Candidates[0])
	return edit, err == nil
}

// Accept builds the edit inserting candidate in place of the typed prefix
func (r Result) Accept(candidate string) (Edit, error) {
	if !slices.Contains(r.Candidates, candidate) {
		return Edit{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, candidate)
	}

	text := candidate
	switch r.Kind {
	case KindElement:
		text += " "
	case KindAttribute:
		text += `="`
	}

	return Edit{
		Start:  r.Start,
		End:    r.End,
		Text:   text,
		Cursor: r.Start + len(text),
	}, nil
}

// Engine classifies the cursor position against a grammar
type Engine struct {
	grammar *Grammar
}

// NewEngine creates a completion engine; a nil grammar selects WPKG
func NewEngine(g *Grammar) *Engine {
	if g == nil {
		g = WPKG
	}
	return &Engine{grammar: g}
}

// Complete inspects only the request line. Tags spanning several lines
// are not recognised.
func (e *Engine) Complete(req Request) Result {
	col := min(max(req.Column, 0), len(req.Line))
	before := req.Line[:col]
	none := Result{Kind: KindNone, Start: col, End: col}

	lt := strings.LastIndexByte(before, '<')
	if lt < 0 || strings.IndexByte(before[lt:], '>') >= 0 {
		return none
	}

	seg := before[lt+1:]
	ws := strings.IndexAny(seg, " \t")

	// Element name: nothing but name characters since the '<'
	if ws < 0 {
		if !isName(seg) {
			return none
		}
		return Result{
			Kind:       KindElement,
			Prefix:     seg,
			Start:      lt + 1,
			End:        col,
			Candidates: e.grammar.Elements(seg),
		}
	}

	element := seg[:ws]
	if element == "" || !isName(element) || insideQuotes(seg[ws:]) {
		return none
	}

	tokenStart := col
	for tokenStart > 0 && isNameByte(req.Line[tokenStart-1]) {
		tokenStart--
	}
	if c := req.Line[tokenStart-1]; c != ' ' && c != '\t' {
		return none
	}

	prefix := req.Line[tokenStart:col]
	attrs, ok := e.grammar.Attributes(element, prefix)
	if !ok {
		return none
	}

	return Result{
		Kind:       KindAttribute,
		Element:    element,
		Prefix:     prefix,
		Start:      tokenStart,
		End:        col,
		Candidates: attrs,
	}
}

// insideQuotes reports whether s ends inside an open attribute value
func insideQuotes(s string) bool {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case c == quote:
			quote = 0
		}
	}
	return quote != 0
}

func isName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == ':' || c == '-'
}
