// Package codec converts between WPKG package XML and the document model.
package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ralt/wpkgedit/internal/models"
)

var (
	declPattern    = regexp.MustCompile(`^<\?xml\s+version\s*=\s*("[^"]*"|'[^']*')[^>]*\?>`)
	commentPattern = regexp.MustCompile(`(?s)<!--(.*?)-->`)
)

// ParseError reports malformed XML with the position the parser stopped at
type ParseError struct {
	Message string
	Line    int // 1-based, 0 when unknown
	Column  int // 1-based, 0 when unknown
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Parse reads a WPKG document into a package.
// Only the first package element is read; everything the model does not
// know about is dropped.
func Parse(text string) (*models.Package, error) {
	pkg := models.NewPackage()
	pkg.Declaration = Declaration(text)
	pkg.Comments = Comments(text)

	found := false
	err := walk(text, func(dec *xml.Decoder, se xml.StartElement) error {
		if found || se.Name.Local != "package" {
			return nil
		}
		found = true

		var el xmlPackage
		if err := dec.DecodeElement(&el, &se); err != nil {
			return err
		}
		el.toModel(pkg, se)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, &ParseError{Message: "no package element found"}
	}

	return pkg, nil
}

// Verify checks that text is a well-formed XML document
func Verify(text string) error {
	return walk(text, func(*xml.Decoder, xml.StartElement) error { return nil })
}

// Format re-generates text through the model, dropping unmodeled content
func Format(text string) (string, error) {
	pkg, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Serialize(pkg)
}

// Declaration returns the leading XML declaration, or the default one when
// it is missing or malformed
func Declaration(text string) string {
	if m := declPattern.FindString(strings.TrimLeft(text, "\ufeff")); m != "" {
		return m
	}
	return models.DefaultDeclaration
}

// Comments returns every comment body in document order, trimmed
func Comments(text string) []string {
	var comments []string
	for _, m := range commentPattern.FindAllStringSubmatch(text, -1) {
		comments = append(comments, strings.TrimSpace(m[1]))
	}
	return comments
}

// walk tokenizes the whole document, handing every start element to fn.
// fn may consume the element with DecodeElement.
func walk(text string, fn func(*xml.Decoder, xml.StartElement) error) error {
	dec := xml.NewDecoder(strings.NewReader(text))
	// The buffer is already decoded; the declared encoding is informative only.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	sawRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return newParseError(dec, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if err := fn(dec, se); err != nil {
			return newParseError(dec, err)
		}
	}

	if !sawRoot {
		return &ParseError{Message: "document has no root element"}
	}
	return nil
}

func newParseError(dec *xml.Decoder, err error) *ParseError {
	line, col := dec.InputPos()
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParseError{Message: syntaxErr.Msg, Line: syntaxErr.Line, Column: col}
	}
	return &ParseError{Message: err.Error(), Line: line, Column: col}
}
