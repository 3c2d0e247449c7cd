package signer

import (
	"bytes"
	"crypto"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/sirupsen/logrus"
)

// GPGSigner implements Signer with an OpenPGP private key
type GPGSigner struct {
	entity *openpgp.Entity
}

// NewGPGSigner creates a new GPG signer from a private key file
func NewGPGSigner(keyPath, passphrase string) (*GPGSigner, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("key path is empty")
	}

	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	defer keyFile.Close()

	// Armored first, then binary
	entityList, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		if _, seekErr := keyFile.Seek(0, io.SeekStart); seekErr != nil {
			return nil, fmt.Errorf("failed to rewind key file: %w", seekErr)
		}
		entityList, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in key file")
	}

	entity := entityList[0]
	if entity.PrivateKey == nil {
		return nil, fmt.Errorf("key file %s holds no private key", keyPath)
	}

	if passphrase != "" {
		if entity.PrivateKey.Encrypted {
			err = entity.PrivateKey.Decrypt([]byte(passphrase))
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt private key: %w", err)
			}
		}

		for _, subkey := range entity.Subkeys {
			if subkey.PrivateKey != nil && subkey.PrivateKey.Encrypted {
				err = subkey.PrivateKey.Decrypt([]byte(passphrase))
				if err != nil {
					return nil, fmt.Errorf("failed to decrypt subkey: %w", err)
				}
			}
		}
	}

	if entity.PrivateKey.Encrypted {
		return nil, fmt.Errorf("private key is encrypted and no passphrase was given")
	}

	logrus.Debugf("Loaded signing key %X", entity.PrimaryKey.KeyId)
	return &GPGSigner{entity: entity}, nil
}

// SignDetached creates an armored detached signature over data
func (s *GPGSigner) SignDetached(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	err := openpgp.ArmoredDetachSign(&buf, s.entity, bytes.NewReader(data), &packet.Config{
		DefaultHash: crypto.SHA512,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create detached signature: %w", err)
	}

	return buf.Bytes(), nil
}
