package models

// EditorConfig contains configuration for an editing session
type EditorConfig struct {
	// History
	HistoryCapacity int

	// Serialization
	DefaultDeclaration string

	// Search defaults
	CaseSensitive bool
	WholeWord     bool
	Regex         bool

	// Variable expansion
	Architecture string // x86 or x64, empty expands unscoped variables only

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}

// DefaultHistoryCapacity matches the number of undo steps the editor keeps
const DefaultHistoryCapacity = 50

// DefaultEditorConfig returns the configuration used when no flags are set
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		HistoryCapacity:    DefaultHistoryCapacity,
		DefaultDeclaration: DefaultDeclaration,
	}
}
