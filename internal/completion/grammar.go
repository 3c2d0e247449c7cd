// Package completion suggests WPKG element and attribute names at the cursor.
package completion

import "strings"

// Grammar maps element names to their ordered attribute names
type Grammar struct {
	elements   []string
	attributes map[string][]string
}

// NewGrammar builds a grammar from ordered element definitions
func NewGrammar(defs ...ElementDef) *Grammar {
	g := &Grammar{attributes: make(map[string][]string, len(defs))}
	for _, d := range defs {
		g.elements = append(g.elements, d.Name)
		g.attributes[d.Name] = d.Attributes
	}
	return g
}

// ElementDef declares one element and its attributes
type ElementDef struct {
	Name       string
	Attributes []string
}

// WPKG is the grammar of the package dialect. The packages root is left
// out so that "package" stays a unique completion.
var WPKG = NewGrammar(
	ElementDef{"package", []string{"id", "name", "revision", "date", "reboot", "category", "priority"}},
	ElementDef{"variable", []string{"name", "value", "architecture"}},
	ElementDef{"check", []string{"type", "condition", "path", "value", "architecture"}},
	ElementDef{"install", []string{"cmd", "include", "timeout"}},
	ElementDef{"upgrade", []string{"include", "cmd"}},
	ElementDef{"remove", []string{"cmd", "timeout"}},
	ElementDef{"exit", []string{"code"}},
)

// Elements returns the element names starting with prefix, in table order
func (g *Grammar) Elements(prefix string) []string {
	return filterPrefix(g.elements, prefix)
}

// Attributes returns the attributes of element starting with prefix.
// ok is false when the element is unknown.
func (g *Grammar) Attributes(element, prefix string) (names []string, ok bool) {
	attrs, ok := g.attributes[element]
	if !ok {
		return nil, false
	}
	return filterPrefix(attrs, prefix), true
}

func filterPrefix(names []string, prefix string) []string {
	var out []string
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}
