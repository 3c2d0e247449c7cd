// Package session ties the document model to its text.
//
// A Session owns one package, the buffer holding its XML, the undo history,
// the search position and the highlight spans. Form edits go through Apply
// and regenerate the text; text edits go through SetText and only reach the
// model on UpdateFromXML. Every model change records a history checkpoint.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ralt/wpkgedit/internal/buffer"
	"github.com/ralt/wpkgedit/internal/codec"
	"github.com/ralt/wpkgedit/internal/completion"
	"github.com/ralt/wpkgedit/internal/docio"
	"github.com/ralt/wpkgedit/internal/highlight"
	"github.com/ralt/wpkgedit/internal/history"
	"github.com/ralt/wpkgedit/internal/models"
	"github.com/ralt/wpkgedit/internal/search"
	"github.com/ralt/wpkgedit/internal/templates"
	"github.com/sirupsen/logrus"
)

// ErrNoPath is returned by Save when the session has never been saved or opened
var ErrNoPath = errors.New("document has no file name")

// Session is a single editing session
type Session struct {
	cfg models.EditorConfig

	pkg     *models.Package
	buf     *buffer.Buffer
	history *history.History
	search  *search.Engine
	compl   *completion.Engine

	spans  []highlight.Span
	marker highlight.Marker

	path  string
	saved string // digest of the text at the last open or save
}

// New creates a session holding an empty package
func New(cfg models.EditorConfig) (*Session, error) {
	s := &Session{
		cfg:     cfg,
		buf:     buffer.New(""),
		history: history.New(cfg.HistoryCapacity),
		search:  search.NewEngine(),
		compl:   completion.NewEngine(nil),
	}

	pkg := models.NewPackage()
	if cfg.DefaultDeclaration != "" {
		pkg.Declaration = cfg.DefaultDeclaration
	}
	text, err := codec.Serialize(pkg)
	if err != nil {
		return nil, err
	}

	s.replace(pkg, text, "new document")
	s.saved = docio.Digest(text)
	return s, nil
}

// Open replaces the session content with the document at path. On failure
// the session is unchanged.
func (s *Session) Open(path string) error {
	text, err := docio.Load(path)
	if err != nil {
		return err
	}

	pkg, err := codec.Parse(text)
	if err != nil {
		return err
	}

	s.history.Clear()
	s.replace(pkg, text, "open "+path)
	s.path = path
	s.saved = docio.Digest(text)

	logrus.Infof("Opened %s (package %q, %d variables, %d checks)", path, pkg.ID, len(pkg.Variables), len(pkg.Checks))
	return nil
}

// Save writes the text to path, or to the current file when path is empty
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return &models.EditError{Type: models.ErrIO, Err: ErrNoPath}
	}

	text := s.buf.Text()
	if err := docio.Save(path, text); err != nil {
		return err
	}

	s.path = path
	s.saved = docio.Digest(text)
	logrus.Infof("Saved %s", path)
	return nil
}

// LoadTemplate replaces the document with a built-in template dated now
func (s *Session) LoadTemplate(kind templates.Kind, now time.Time) error {
	text, err := templates.Render(kind, now)
	if err != nil {
		return &models.EditError{Type: models.ErrModel, Entity: "template", Err: err}
	}

	pkg, err := codec.Parse(text)
	if err != nil {
		return err
	}

	s.replace(pkg, text, fmt.Sprintf("template %s", kind))
	return nil
}

// SetText replaces the raw text without touching the model
func (s *Session) SetText(text string) {
	s.buf.SetText(text)
	s.rehighlight()
}

// UpdateFromXML parses the current text into the model. A parse failure
// marks the error line and keeps the previous model.
func (s *Session) UpdateFromXML() error {
	pkg, err := codec.Parse(s.buf.Text())
	if err != nil {
		s.markError(err)
		return err
	}

	s.marker.Clear()
	s.pkg = pkg
	s.checkpoint("update from XML")
	return nil
}

// Apply runs fn on a copy of the model. When fn succeeds the copy becomes
// the model and the text is regenerated; when it fails nothing changes.
func (s *Session) Apply(label string, fn func(pkg *models.Package) error) error {
	pkg := s.pkg.Clone()
	if err := fn(pkg); err != nil {
		logrus.Debugf("Edit %q not applied: %v", label, err)
		return err
	}
	if err := pkg.Validate(); err != nil {
		return err
	}

	text, err := codec.Serialize(pkg)
	if err != nil {
		return &models.EditError{Type: models.ErrModel, Entity: label, Err: err}
	}

	s.replace(pkg, text, label)
	return nil
}

// Format regenerates the text from its own parse, dropping unmodeled content
func (s *Session) Format() error {
	pkg, err := codec.Parse(s.buf.Text())
	if err != nil {
		s.markError(err)
		return err
	}

	text, err := codec.Serialize(pkg)
	if err != nil {
		return err
	}

	s.replace(pkg, text, "format")
	return nil
}

// Verify checks the text for well-formedness and marks the failing line
func (s *Session) Verify() error {
	if err := codec.Verify(s.buf.Text()); err != nil {
		s.markError(err)
		return err
	}
	s.marker.Clear()
	return nil
}

// Undo restores the previous checkpoint
func (s *Session) Undo() error {
	snap, err := s.history.Undo()
	if err != nil {
		return err
	}
	s.restore(snap)
	return nil
}

// Redo restores the next checkpoint
func (s *Session) Redo() error {
	snap, err := s.history.Redo()
	if err != nil {
		return err
	}
	s.restore(snap)
	return nil
}

// Complete returns the completion candidates at offset
func (s *Session) Complete(offset int) (completion.Result, error) {
	req, _, err := s.completionRequest(offset)
	if err != nil {
		return completion.Result{}, err
	}
	return s.compl.Complete(req), nil
}

// AcceptCompletion inserts candidate at offset and returns the new cursor
// offset
func (s *Session) AcceptCompletion(offset int, candidate string) (int, error) {
	req, lineStart, err := s.completionRequest(offset)
	if err != nil {
		return offset, err
	}

	edit, err := s.compl.Complete(req).Accept(candidate)
	if err != nil {
		return offset, err
	}

	if err := s.buf.Replace(lineStart+edit.Start, lineStart+edit.End, edit.Text); err != nil {
		return offset, err
	}
	s.rehighlight()
	return lineStart + edit.Cursor, nil
}

// Find searches from the current search position
func (s *Session) Find(q search.Query) (search.Match, error) {
	return s.search.Find(s.buf, q)
}

// FindFrom searches from offset
func (s *Session) FindFrom(q search.Query, offset int) (search.Match, error) {
	return s.search.FindNext(s.buf, q, offset)
}

// Replace replaces the pending match and finds the next one
func (s *Session) Replace(replacement string) (search.Match, error) {
	next, replaced, err := s.search.Replace(s.buf, replacement)
	if replaced {
		s.rehighlight()
	}
	return next, err
}

// ReplaceAll replaces every match and returns the count
func (s *Session) ReplaceAll(q search.Query, replacement string) (int, error) {
	n, err := s.search.ReplaceAll(s.buf, q, replacement)
	if n > 0 {
		s.rehighlight()
	}
	return n, err
}

// Modified reports whether the text differs from the last open or save
func (s *Session) Modified() bool {
	return docio.Digest(s.buf.Text()) != s.saved
}

// Package returns a copy of the model
func (s *Session) Package() *models.Package {
	return s.pkg.Clone()
}

// Text returns the document text
func (s *Session) Text() string {
	return s.buf.Text()
}

// Buffer exposes the text buffer for position conversions
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Spans returns the highlight spans of the current text
func (s *Session) Spans() []highlight.Span {
	return s.spans
}

// ErrorLine returns the line marked by the last failed parse or verify
func (s *Session) ErrorLine() (int, bool) {
	return s.marker.Line()
}

// Path returns the file the session was last opened from or saved to
func (s *Session) Path() string {
	return s.path
}

// CanUndo reports whether Undo would succeed
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would succeed
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

func (s *Session) replace(pkg *models.Package, text, label string) {
	s.pkg = pkg
	s.buf.SetText(text)
	s.search.Reset()
	s.marker.Clear()
	s.rehighlight()
	s.checkpoint(label)
}

func (s *Session) restore(snap history.Snapshot) {
	s.pkg = snap.Package
	s.buf.SetText(snap.Text)
	s.search.Reset()
	s.marker.Clear()
	s.rehighlight()
	logrus.Debugf("Restored checkpoint %q", snap.Label)
}

func (s *Session) checkpoint(label string) {
	s.history.Checkpoint(s.pkg, s.buf.Text(), label)
	logrus.Debugf("Checkpoint %q (%d in history)", label, s.history.Len())
}

func (s *Session) rehighlight() {
	s.spans = highlight.Highlight(s.buf.Text())
}

func (s *Session) markError(err error) {
	var parseErr *codec.ParseError
	if errors.As(err, &parseErr) && parseErr.Line > 0 {
		s.marker.Mark(parseErr.Line)
		logrus.Warnf("XML error at line %d: %s", parseErr.Line, parseErr.Message)
		return
	}
	s.marker.Clear()
	logrus.Warnf("XML error: %v", err)
}

func (s *Session) completionRequest(offset int) (completion.Request, int, error) {
	p, err := s.buf.OffsetToPoint(offset)
	if err != nil {
		return completion.Request{}, 0, err
	}
	lineStart, err := s.buf.PointToOffset(buffer.Point{Line: p.Line})
	if err != nil {
		return completion.Request{}, 0, err
	}
	line, err := s.buf.Line(p.Line)
	if err != nil {
		return completion.Request{}, 0, err
	}
	return completion.Request{Line: line, Column: min(p.Column, len(line))}, lineStart, nil
}
