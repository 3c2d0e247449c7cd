package models

// DefaultDeclaration is used when a document has no usable XML declaration
const DefaultDeclaration = `<?xml version="1.0" encoding="iso-8859-1"?>`

// Reboot values accepted by the package element
const (
	RebootTrue  = "true"
	RebootFalse = "false"
)

// Package represents one WPKG package definition with its instructions
type Package struct {
	// Identity attributes
	ID       string
	Name     string
	Revision string
	Date     string
	Reboot   string
	Category string
	Priority string

	// Document-level data kept alongside the package
	Declaration string
	Comments    []string

	// Ordered children (order is execution order)
	Variables []Variable
	Checks    []Check
	Installs  []Command
	Upgrades  []Command
	Removes   []Command
}

// Variable is a named substitution usable in command lines
type Variable struct {
	Name         string
	Value        string
	Architecture string // x86, x64 or empty for all
}

// Check is a detection rule gating install and upgrade
type Check struct {
	Type         string
	Condition    string
	Path         string
	Value        string
	Architecture string
}

// Command is one scripted action used by install, upgrade and remove
type Command struct {
	Cmd      string
	Include  string
	Timeout  string
	ExitCode string // never set for upgrades
}

// NewPackage returns an empty package with the default declaration
func NewPackage() *Package {
	return &Package{
		Reboot:      RebootFalse,
		Declaration: DefaultDeclaration,
	}
}

// Clone returns a deep copy of the package
func (p *Package) Clone() *Package {
	if p == nil {
		return nil
	}
	c := *p
	c.Comments = cloneSlice(p.Comments)
	c.Variables = cloneSlice(p.Variables)
	c.Checks = cloneSlice(p.Checks)
	c.Installs = cloneSlice(p.Installs)
	c.Upgrades = cloneSlice(p.Upgrades)
	c.Removes = cloneSlice(p.Removes)
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
