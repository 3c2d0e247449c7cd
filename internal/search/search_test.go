package search

import (
	"testing"

	"github.com/ralt/wpkgedit/internal/buffer"
	"github.com/ralt/wpkgedit/internal/models"
	"github.com/stretchr/testify/require"
)

func TestFindNextWholeWord(t *testing.T) {
	buf := buffer.New("foo foobar foo")
	e := NewEngine()
	q := Query{Pattern: "foo", Options: Options{WholeWord: true}}

	m, err := e.FindNext(buf, q, 0)
	require.NoError(t, err)
	require.Equal(t, 0, m.Start)
	require.Equal(t, 3, m.End)
	require.Equal(t, 3, e.Position())

	m, err = e.Find(buf, q)
	require.NoError(t, err)
	require.Equal(t, 11, m.Start)
	require.Equal(t, 14, m.End)
	require.False(t, m.Wrapped)

	m, err = e.Find(buf, q)
	require.NoError(t, err)
	require.Equal(t, 0, m.Start)
	require.True(t, m.Wrapped)
}

func TestFindNextCaseFolding(t *testing.T) {
	buf := buffer.New("Install INSTALL install")
	e := NewEngine()

	m, err := e.FindNext(buf, Query{Pattern: "install"}, 1)
	require.NoError(t, err)
	require.Equal(t, "INSTALL", m.Text)

	m, err = e.FindNext(buf, Query{Pattern: "install", Options: Options{CaseSensitive: true}}, 0)
	require.NoError(t, err)
	require.Equal(t, 16, m.Start)
}

func TestFindNextLiteralVersusRegex(t *testing.T) {
	buf := buffer.New(`path="C:\a.b" value="1.2"`)
	e := NewEngine()

	_, err := e.FindNext(buf, Query{Pattern: "1+2"}, 0)
	require.ErrorIs(t, err, ErrNotFound)

	m, err := e.FindNext(buf, Query{Pattern: `\d\.\d`, Options: Options{Regex: true}}, 0)
	require.NoError(t, err)
	require.Equal(t, "1.2", m.Text)

	m, err = e.FindNext(buf, Query{Pattern: `C:\a`}, 0)
	require.NoError(t, err)
	require.Equal(t, `C:\a`, m.Text)
}

func TestFindNextOverlapping(t *testing.T) {
	buf := buffer.New("aaa")
	e := NewEngine()

	m, err := e.FindNext(buf, Query{Pattern: "aa"}, 1)
	require.NoError(t, err)
	require.Equal(t, 1, m.Start)
	require.Equal(t, 3, m.End)
	require.False(t, m.Wrapped)
}

func TestFindNextWholeWordMidWord(t *testing.T) {
	e := NewEngine()
	q := Query{Pattern: "foo", Options: Options{WholeWord: true}}

	m, err := e.FindNext(buffer.New("xfoo foo"), q, 1)
	require.NoError(t, err)
	require.Equal(t, 5, m.Start)
	require.False(t, m.Wrapped)

	m, err = e.FindNext(buffer.New("-foo"), q, 1)
	require.NoError(t, err)
	require.Equal(t, 1, m.Start)
}

func TestFindNextStatusErrors(t *testing.T) {
	buf := buffer.New("abc")
	e := NewEngine()

	_, err := e.FindNext(buf, Query{}, 0)
	require.ErrorIs(t, err, ErrEmptyPattern)

	_, err = e.FindNext(buf, Query{Pattern: "zzz"}, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidRegexLeavesStateUntouched(t *testing.T) {
	buf := buffer.New("abc abc")
	e := NewEngine()

	_, err := e.FindNext(buf, Query{Pattern: "abc"}, 0)
	require.NoError(t, err)

	_, err = e.FindNext(buf, Query{Pattern: "(", Options: Options{Regex: true}}, 0)
	require.Error(t, err)
	require.True(t, models.IsType(err, models.ErrSearch))
	require.Equal(t, 3, e.Position())

	pending, ok := e.Pending()
	require.True(t, ok)
	require.Equal(t, 0, pending.Start)

	_, err = e.ReplaceAll(buf, Query{Pattern: "[", Options: Options{Regex: true}}, "x")
	require.Error(t, err)
	require.Equal(t, "abc abc", buf.Text())
}

func TestReplace(t *testing.T) {
	buf := buffer.New("a1 a2 a3")
	e := NewEngine()

	_, _, err := e.Replace(buf, "b")
	require.ErrorIs(t, err, ErrNoQuery)

	_, err = e.FindNext(buf, Query{Pattern: "a"}, 0)
	require.NoError(t, err)

	next, replaced, err := e.Replace(buf, "bb")
	require.NoError(t, err)
	require.True(t, replaced)
	require.Equal(t, "bb1 a2 a3", buf.Text())
	require.Equal(t, 4, next.Start)

	next, replaced, err = e.Replace(buf, "bb")
	require.NoError(t, err)
	require.True(t, replaced)
	require.Equal(t, "bb1 bb2 a3", buf.Text())
	require.Equal(t, 8, next.Start)
}

func TestReplaceWithoutPendingOnlyFinds(t *testing.T) {
	buf := buffer.New("x y x")
	e := NewEngine()

	_, err := e.FindNext(buf, Query{Pattern: "x"}, 0)
	require.NoError(t, err)

	// The buffer changed under the pending match
	require.NoError(t, buf.Replace(0, 1, "z"))

	next, replaced, err := e.Replace(buf, "q")
	require.NoError(t, err)
	require.False(t, replaced)
	require.Equal(t, "z y x", buf.Text())
	require.Equal(t, 4, next.Start)
}

func TestReplaceAllTerminates(t *testing.T) {
	buf := buffer.New("a a a")
	e := NewEngine()

	count, err := e.ReplaceAll(buf, Query{Pattern: "a"}, "aa")
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.Equal(t, "aa aa aa", buf.Text())
}

func TestReplaceAllOverlapping(t *testing.T) {
	buf := buffer.New("aaaa")
	n, err := NewEngine().ReplaceAll(buf, Query{Pattern: "aa"}, "a")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "aa", buf.Text())
}

func TestReplaceAllVariants(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		query       Query
		replacement string
		want        string
		count       int
	}{
		{"whole word", "foo foobar foo", Query{Pattern: "foo", Options: Options{WholeWord: true}}, "bar", "bar foobar bar", 2},
		{"case insensitive", "Cmd CMD cmd", Query{Pattern: "cmd"}, "x", "x x x", 3},
		{"delete", "a-b-c", Query{Pattern: "-"}, "", "abc", 2},
		{"empty regex match", "bb", Query{Pattern: "a*", Options: Options{Regex: true}}, "x", "xbxbx", 3},
		{"no match", "abc", Query{Pattern: "z"}, "y", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.New(tt.text)
			count, err := NewEngine().ReplaceAll(buf, tt.query, tt.replacement)
			require.NoError(t, err)
			require.Equal(t, tt.count, count)
			require.Equal(t, tt.want, buf.Text())
		})
	}
}
