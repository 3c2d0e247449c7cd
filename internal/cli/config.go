package cli

import (
	"fmt"
	"io"

	"github.com/ralt/wpkgedit/internal/models"
	"github.com/ralt/wpkgedit/internal/session"
	"github.com/ralt/wpkgedit/internal/signer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// addSigningFlags registers the flags that enable detached signatures
func addSigningFlags(cmd *cobra.Command, config *models.EditorConfig) {
	cmd.Flags().StringVarP(&config.GPGKeyPath, "sign-key", "k", "", "Path to GPG private key; writes <output>.asc")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "sign-passphrase", "p", "", "GPG key passphrase")
}

// addSearchFlags registers the matching options
func addSearchFlags(cmd *cobra.Command, config *models.EditorConfig) {
	cmd.Flags().BoolVarP(&config.CaseSensitive, "case-sensitive", "c", false, "Match case")
	cmd.Flags().BoolVarP(&config.WholeWord, "whole-word", "W", false, "Match whole words only")
	cmd.Flags().BoolVarP(&config.Regex, "regex", "r", false, "Treat the pattern as a regular expression")
}

func validateConfig(config *models.EditorConfig) error {
	if config.HistoryCapacity <= 0 {
		return &models.EditError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("history capacity must be positive, got %d", config.HistoryCapacity),
		}
	}

	switch config.Architecture {
	case "", "x86", "x64":
	default:
		return &models.EditError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("architecture must be x86 or x64, got %q", config.Architecture),
		}
	}

	if config.GPGPassphrase != "" && config.GPGKeyPath == "" {
		return &models.EditError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("sign-passphrase requires sign-key"),
		}
	}

	if config.DefaultDeclaration == "" {
		config.DefaultDeclaration = models.DefaultDeclaration
	}

	return nil
}

// openSession validates config and loads path into a new session
func openSession(config *models.EditorConfig, path string) (*session.Session, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	s, err := session.New(*config)
	if err != nil {
		return nil, err
	}
	if err := s.Open(path); err != nil {
		return nil, err
	}
	return s, nil
}

// writeResult saves the session to output, or prints its text when output
// is empty. A configured signing key signs the saved file.
func writeResult(w io.Writer, s *session.Session, config *models.EditorConfig, output string) error {
	if output == "" {
		if config.GPGKeyPath != "" {
			return &models.EditError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("signing needs an output file"),
			}
		}
		_, err := io.WriteString(w, s.Text())
		return err
	}

	if err := s.Save(output); err != nil {
		return err
	}

	if config.GPGKeyPath == "" {
		return nil
	}

	gpg, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
	if err != nil {
		return &models.EditError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to load signing key: %w", err),
		}
	}

	sigPath, err := signer.SignFile(gpg, output)
	if err != nil {
		return &models.EditError{Type: models.ErrIO, Entity: output, Err: err}
	}
	logrus.Infof("Signature written to %s", sigPath)
	return nil
}
