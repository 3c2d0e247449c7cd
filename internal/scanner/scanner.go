// Package scanner finds package documents in a directory tree.
package scanner

import (
	"context"

	"github.com/ralt/wpkgedit/internal/docio"
)

// Document is a package file found during scanning
type Document struct {
	Path        string
	Compression docio.Compression
	Size        int64
}

// Scanner interface for finding package documents
type Scanner interface {
	// Scan recursively scans a directory for documents
	Scan(ctx context.Context, dir string) ([]Document, error)

	// Detect reports whether path is a package document and how it is
	// compressed
	Detect(path string) (docio.Compression, bool, error)
}
