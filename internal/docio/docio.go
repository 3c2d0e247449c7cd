// Package docio loads and saves package documents.
//
// Documents are decoded from the encoding their XML declaration names and
// may be stored gzip, zstd or xz compressed, chosen by file extension.
package docio

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/ralt/wpkgedit/internal/models"
	"github.com/sirupsen/logrus"
)

// Load reads the document at path and returns its text
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioError(path, err)
	}

	c := CompressionFor(path)
	if data, err = Decompress(c, data); err != nil {
		return "", ioError(path, err)
	}

	text, err := Decode(data)
	if err != nil {
		return "", ioError(path, err)
	}

	logrus.Debugf("Loaded %s (%d bytes, compression %s)", path, len(data), c)
	return text, nil
}

// Save writes text to path, creating directories as needed
func Save(path, text string) error {
	data, err := Encode(text)
	if err != nil {
		return ioError(path, err)
	}

	c := CompressionFor(path)
	if data, err = Compress(c, data); err != nil {
		return ioError(path, err)
	}

	if err := WriteFile(path, data, 0644); err != nil {
		return ioError(path, err)
	}

	logrus.Debugf("Saved %s (%d bytes, compression %s)", path, len(data), c)
	return nil
}

// WriteFile writes data to a file, creating directories as needed
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// Digest returns the SHA256 of text, used to detect unsaved changes
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func ioError(path string, err error) error {
	return &models.EditError{Type: models.ErrIO, Entity: path, Err: err}
}
