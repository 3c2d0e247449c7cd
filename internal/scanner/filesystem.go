package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ralt/wpkgedit/internal/docio"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner interface for filesystem scanning
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan recursively scans a directory for package documents
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return nil
		}

		c, ok, err := s.Detect(path)
		if err != nil {
			logrus.Warnf("Skipping %s: %v", path, err)
			return nil
		}
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		logrus.Debugf("Found document %s (compression %s)", path, c)
		docs = append(docs, Document{Path: path, Compression: c, Size: info.Size()})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	logrus.Infof("Found %d documents in %s", len(docs), dir)
	return docs, nil
}

// Detect reports whether path is a package document
func (s *FileSystemScanner) Detect(path string) (docio.Compression, bool, error) {
	return DetectDocument(path)
}
