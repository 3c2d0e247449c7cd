package cli

import (
	"fmt"
	"time"

	"github.com/ralt/wpkgedit/internal/models"
	"github.com/ralt/wpkgedit/internal/search"
	"github.com/ralt/wpkgedit/internal/session"
	"github.com/ralt/wpkgedit/internal/templates"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewFormatCmd creates the format command
func NewFormatCmd() *cobra.Command {
	config := models.DefaultEditorConfig()
	var output string
	var write bool

	cmd := &cobra.Command{
		Use:   "format FILE",
		Short: "Regenerate a package file from its model",
		Long: `Parses FILE and writes it back in canonical form: declaration, comments
right after the packages root, then the package element with its children
ordered variable, check, install, upgrade, remove. Content the editor does
not model is dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				output = args[0]
			}

			s, err := openSession(&config, args[0])
			if err != nil {
				return err
			}
			if err := s.Format(); err != nil {
				return err
			}

			logrus.Debugf("Formatted %s", args[0])
			return writeResult(cmd.OutOrStdout(), s, &config, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to FILE")
	addSigningFlags(cmd, &config)

	return cmd
}

// NewReplaceCmd creates the replace command
func NewReplaceCmd() *cobra.Command {
	config := models.DefaultEditorConfig()
	var output, replacement string
	var write, check bool

	cmd := &cobra.Command{
		Use:   "replace FILE PATTERN",
		Short: "Replace every occurrence of a pattern in the document text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				output = args[0]
			}

			s, err := openSession(&config, args[0])
			if err != nil {
				return err
			}

			q := search.Query{
				Pattern: args[1],
				Options: search.Options{
					CaseSensitive: config.CaseSensitive,
					WholeWord:     config.WholeWord,
					Regex:         config.Regex,
				},
			}
			n, err := s.ReplaceAll(q, replacement)
			if err != nil {
				return err
			}
			logrus.Infof("Replaced %d occurrence(s) of %q", n, args[1])

			if check {
				if err := s.UpdateFromXML(); err != nil {
					return fmt.Errorf("replacement broke the document: %w", err)
				}
			}

			return writeResult(cmd.OutOrStdout(), s, &config, output)
		},
	}

	cmd.Flags().StringVar(&replacement, "with", "", "Replacement text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to FILE")
	cmd.Flags().BoolVar(&check, "check", true, "Refuse to write a result that no longer parses")
	addSearchFlags(cmd, &config)
	addSigningFlags(cmd, &config)

	return cmd
}

// NewTemplateCmd creates the template command
func NewTemplateCmd() *cobra.Command {
	config := models.DefaultEditorConfig()
	var output string

	cmd := &cobra.Command{
		Use:       "template KIND",
		Short:     "Generate a starter package",
		Long:      fmt.Sprintf("Generates a package from a built-in template dated today.\n\nAvailable kinds: %v", templates.Kinds()),
		Args:      cobra.ExactArgs(1),
		ValidArgs: templates.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfig(&config); err != nil {
				return err
			}

			s, err := session.New(config)
			if err != nil {
				return err
			}
			if err := s.LoadTemplate(templates.Kind(args[0]), time.Now()); err != nil {
				return err
			}

			return writeResult(cmd.OutOrStdout(), s, &config, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	addSigningFlags(cmd, &config)

	return cmd
}
