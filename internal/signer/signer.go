// Package signer produces OpenPGP detached signatures for saved documents.
package signer

import (
	"fmt"
	"os"
)

// SignatureExt is appended to a document path to name its signature
const SignatureExt = ".asc"

// Signer signs document bytes
type Signer interface {
	// SignDetached creates an armored detached signature
	SignDetached(data []byte) ([]byte, error)
}

// SignFile signs the file at path as stored on disk and writes the
// signature next to it. It returns the signature path.
func SignFile(s Signer, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	sig, err := s.SignDetached(data)
	if err != nil {
		return "", err
	}

	sigPath := path + SignatureExt
	if err := os.WriteFile(sigPath, sig, 0644); err != nil {
		return "", fmt.Errorf("failed to write signature: %w", err)
	}
	return sigPath, nil
}
