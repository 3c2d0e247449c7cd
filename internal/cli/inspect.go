package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ralt/wpkgedit/internal/buffer"
	"github.com/ralt/wpkgedit/internal/codec"
	"github.com/ralt/wpkgedit/internal/docio"
	"github.com/ralt/wpkgedit/internal/highlight"
	"github.com/ralt/wpkgedit/internal/models"
	"github.com/ralt/wpkgedit/internal/scanner"
	"github.com/ralt/wpkgedit/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadText validates config and puts the raw text of path into a new
// session without parsing it
func loadText(config *models.EditorConfig, path string) (*session.Session, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	text, err := docio.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := session.New(*config)
	if err != nil {
		return nil, err
	}
	s.SetText(text)
	return s, nil
}

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	config := models.DefaultEditorConfig()
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify PATH...",
		Short: "Check that package files are well-formed XML",
		Long: `Checks every FILE given, and every package document (*.xml, optionally
.gz, .zst or .xz compressed) found under each directory given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			paths, err := expandPaths(cmd.Context(), args)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range paths {
				s, err := loadText(&config, path)
				if err == nil {
					err = s.Verify()
				}
				if err == nil && strict {
					err = s.UpdateFromXML()
				}

				var parseErr *codec.ParseError
				switch {
				case err == nil:
					fmt.Fprintf(out, "%s: ok\n", path)
				case errors.As(err, &parseErr) && parseErr.Line > 0:
					fmt.Fprintf(out, "%s:%d: %s\n", path, parseErr.Line, parseErr.Message)
					failed++
				default:
					fmt.Fprintf(out, "%s: %v\n", path, err)
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed verification", failed, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Also require a package element")

	return cmd
}

// expandPaths replaces directories with the documents found under them
func expandPaths(ctx context.Context, args []string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	sc := scanner.NewFileSystemScanner()
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		docs, err := sc.Scan(ctx, arg)
		if err != nil {
			return nil, &models.EditError{Type: models.ErrIO, Entity: arg, Err: err}
		}
		for _, d := range docs {
			paths = append(paths, d.Path)
		}
	}
	return paths, nil
}

// NewHighlightCmd creates the highlight command
func NewHighlightCmd() *cobra.Command {
	config := models.DefaultEditorConfig()
	var output string
	var lineNumbers bool

	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Export a syntax highlighted HTML view of a package file",
		Long: `Writes FILE as a standalone HTML page with the declaration, comments, tags,
attributes and attribute values colored. A line that fails verification is
marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadText(&config, args[0])
			if err != nil {
				return err
			}
			if err := s.Verify(); err != nil {
				logrus.Warnf("%s: %v", args[0], err)
			}

			opts := highlight.HTMLOptions{Title: args[0], LineNumbers: lineNumbers}
			if line, ok := s.ErrorLine(); ok {
				opts.ErrorLine = line
			}

			if output == "" {
				return highlight.RenderHTML(cmd.OutOrStdout(), s.Text(), s.Spans(), opts)
			}

			f, err := os.Create(output)
			if err != nil {
				return &models.EditError{Type: models.ErrIO, Entity: output, Err: err}
			}
			defer f.Close()

			if err := highlight.RenderHTML(f, s.Text(), s.Spans(), opts); err != nil {
				return &models.EditError{Type: models.ErrIO, Entity: output, Err: err}
			}
			logrus.Infof("HTML written to %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", true, "Show line numbers")

	return cmd
}

// NewCompleteCmd creates the complete command
func NewCompleteCmd() *cobra.Command {
	config := models.DefaultEditorConfig()
	var line, column int
	var accept string

	cmd := &cobra.Command{
		Use:   "complete FILE",
		Short: "List element or attribute names valid at a position",
		Long: `Prints the element or attribute names that complete the word before
LINE:COLUMN (1-based line, 0-based byte column). With --accept, or when
there is a single candidate, prints the completed line instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			s, err := loadText(&config, args[0])
			if err != nil {
				return err
			}

			p := buffer.Point{Line: line, Column: column}
			if n := s.Buffer().LineCount(); line < 1 || line > n {
				return &models.EditError{Type: models.ErrModel, Entity: p.String(),
					Err: fmt.Errorf("%w: %s has %d lines", buffer.ErrLineOutOfRange, args[0], n)}
			}
			offset, err := s.Buffer().PointToOffset(p)
			if err != nil {
				return &models.EditError{Type: models.ErrModel, Entity: p.String(), Err: err}
			}

			res, err := s.Complete(offset)
			if err != nil {
				return err
			}

			if accept == "" && len(res.Candidates) == 1 {
				accept = res.Candidates[0]
			}
			if accept == "" {
				for _, c := range res.Candidates {
					fmt.Fprintln(out, c)
				}
				return nil
			}

			if _, err := s.AcceptCompletion(offset, accept); err != nil {
				return err
			}
			completed, err := s.Buffer().Line(line)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, completed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 1, "Cursor line (1-based)")
	cmd.Flags().IntVarP(&column, "column", "c", 0, "Cursor column (0-based byte offset)")
	cmd.Flags().StringVar(&accept, "accept", "", "Candidate to insert")

	return cmd
}

// NewExpandCmd creates the expand command
func NewExpandCmd() *cobra.Command {
	config := models.DefaultEditorConfig()

	cmd := &cobra.Command{
		Use:   "expand FILE",
		Short: "Print install, upgrade and remove commands with variables expanded",
		Long: `Replaces %NAME% references with the package variables, then with common
client variables (SYSTEMDRIVE, SOFTWARE, ComSpec). Variables scoped to
another architecture than --arch are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			s, err := openSession(&config, args[0])
			if err != nil {
				return err
			}
			pkg := s.Package()

			sections := []struct {
				name     string
				commands []models.Command
			}{
				{"install", pkg.Installs},
				{"upgrade", pkg.Upgrades},
				{"remove", pkg.Removes},
			}

			for _, sec := range sections {
				for i, c := range sec.commands {
					if c.Cmd == "" {
						fmt.Fprintf(out, "%s[%d]: include %s\n", sec.name, i, c.Include)
						continue
					}
					fmt.Fprintf(out, "%s[%d]: %s\n", sec.name, i,
						models.Expand(c.Cmd, pkg.Variables, config.Architecture, models.SystemVariables))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&config.Architecture, "arch", "a", "", "Client architecture (x86 or x64)")

	return cmd
}
