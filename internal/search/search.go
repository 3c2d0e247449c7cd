// Package search implements stateful find and replace over a text buffer.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ralt/wpkgedit/internal/models"
	"github.com/sirupsen/logrus"
)

// Status errors; none of them change the buffer.
var (
	ErrEmptyPattern = errors.New("empty search pattern")
	ErrNotFound     = errors.New("no match found")
	ErrNoQuery      = errors.New("no previous search")
)

// Buffer is the text the engine searches and edits
type Buffer interface {
	Text() string
	Replace(start, end int, text string) error
}

// Options control how a pattern is matched
type Options struct {
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
}

// Query is a pattern with its options
type Query struct {
	Pattern string
	Options
}

// Compile turns the query into a regular expression
func (q Query) Compile() (*regexp.Regexp, error) {
	if q.Pattern == "" {
		return nil, ErrEmptyPattern
	}

	expr := q.Pattern
	if !q.Regex {
		expr = regexp.QuoteMeta(expr)
	}
	if q.WholeWord {
		expr = `\b(?:` + expr + `)\b`
	}
	if !q.CaseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &models.EditError{
			Type:   models.ErrSearch,
			Entity: q.Pattern,
			Err:    fmt.Errorf("invalid pattern: %w", err),
		}
	}
	return re, nil
}

// Match is a found span of the buffer. Offsets are byte offsets.
type Match struct {
	Start   int
	End     int
	Text    string
	Wrapped bool // found after wrapping to the start
}

// Engine keeps the search position between calls and the match that is
// currently pending replacement.
type Engine struct {
	pos     int
	query   Query
	re      *regexp.Regexp
	pending *Match
}

// NewEngine creates a search engine positioned at the start of the buffer
func NewEngine() *Engine {
	return &Engine{}
}

// Position returns the offset the next Find starts from
func (e *Engine) Position() int {
	return e.pos
}

// Pending returns the match awaiting replacement, if any
func (e *Engine) Pending() (Match, bool) {
	if e.pending == nil {
		return Match{}, false
	}
	return *e.pending, true
}

// Reset moves the position back to the start and forgets the pending match
func (e *Engine) Reset() {
	e.pos = 0
	e.pending = nil
}

// Find searches from the stored position
func (e *Engine) Find(buf Buffer, q Query) (Match, error) {
	return e.FindNext(buf, q, e.pos)
}

// FindNext searches forward from offset, wrapping to the start once.
// On success the match becomes pending and the position moves to its end.
// An invalid pattern leaves the engine untouched.
func (e *Engine) FindNext(buf Buffer, q Query, from int) (Match, error) {
	re, err := q.Compile()
	if err != nil {
		return Match{}, err
	}
	e.query, e.re = q, re

	text := buf.Text()
	from = clamp(from, len(text))

	m, ok := firstMatch(re, text, from, q.WholeWord)
	if !ok && from != 0 {
		logrus.Debugf("Search for %q wrapped to start", q.Pattern)
		m, ok = firstMatch(re, text, 0, q.WholeWord)
		m.Wrapped = ok
	}
	if !ok {
		e.pending = nil
		return Match{}, ErrNotFound
	}

	e.pending = &m
	e.pos = m.End
	return m, nil
}

// Replace substitutes the pending match and searches for the next one.
// Without a pending match it only searches. replaced reports whether the
// buffer changed; err may be ErrNotFound even when replaced is true.
func (e *Engine) Replace(buf Buffer, replacement string) (next Match, replaced bool, err error) {
	if e.re == nil {
		return Match{}, false, ErrNoQuery
	}

	if m, ok := e.validPending(buf); ok {
		if err := buf.Replace(m.Start, m.End, replacement); err != nil {
			return Match{}, false, err
		}
		e.pending = nil
		e.pos = m.Start + len(replacement)
		replaced = true
	}

	next, err = e.FindNext(buf, e.query, e.pos)
	return next, replaced, err
}

// ReplaceAll replaces every match from the start of the buffer and returns
// the count. Scanning resumes after each inserted replacement and never
// wraps, so a replacement containing the pattern cannot loop.
func (e *Engine) ReplaceAll(buf Buffer, q Query, replacement string) (int, error) {
	re, err := q.Compile()
	if err != nil {
		return 0, err
	}
	e.query, e.re = q, re
	e.pending = nil

	count := 0
	pos := 0
	for {
		text := buf.Text()
		m, ok := firstMatch(re, text, pos, q.WholeWord)
		if !ok {
			break
		}
		if err := buf.Replace(m.Start, m.End, replacement); err != nil {
			return count, err
		}
		count++
		pos = m.Start + len(replacement)

		// An empty match must still make progress
		if m.Start == m.End {
			text = buf.Text()
			if pos >= len(text) {
				break
			}
			_, size := utf8.DecodeRuneInString(text[pos:])
			pos += size
		}
	}

	e.pos = pos
	logrus.Debugf("Replaced %d occurrences of %q", count, q.Pattern)
	return count, nil
}

// validPending returns the pending match if the buffer still holds it
func (e *Engine) validPending(buf Buffer) (Match, bool) {
	if e.pending == nil {
		return Match{}, false
	}
	m := *e.pending
	text := buf.Text()
	if m.End > len(text) || text[m.Start:m.End] != m.Text {
		e.pending = nil
		return Match{}, false
	}
	return m, true
}

// firstMatch returns the leftmost match starting at or after from.
// Matching runs on text[from:], so a leading word boundary is checked
// against the byte before from by hand.
func firstMatch(re *regexp.Regexp, text string, from int, wholeWord bool) (Match, bool) {
	for from <= len(text) {
		loc := re.FindStringIndex(text[from:])
		if loc == nil {
			return Match{}, false
		}
		start, end := from+loc[0], from+loc[1]

		if wholeWord && loc[0] == 0 && start < end && from > 0 &&
			isWordByte(text[from-1]) && isWordByte(text[start]) {
			_, size := utf8.DecodeRuneInString(text[from:])
			from += size
			continue
		}

		return Match{Start: start, End: end, Text: text[start:end]}, true
	}
	return Match{}, false
}

// isWordByte matches the ASCII word characters of \b
func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func clamp(v, hi int) int {
	return min(max(v, 0), hi)
}
