package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wpkgedit",
		Short: "Edit, check and format WPKG package definitions",
		Long: `wpkgedit works on WPKG package XML files: a packages root holding one
package element with its variables, checks and install, upgrade and remove
commands.

Documents may be plain, gzip (.gz), zstd (.zst) or xz (.xz) compressed and
are read in the encoding their XML declaration names.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(NewFormatCmd())
	rootCmd.AddCommand(NewVerifyCmd())
	rootCmd.AddCommand(NewHighlightCmd())
	rootCmd.AddCommand(NewCompleteCmd())
	rootCmd.AddCommand(NewReplaceCmd())
	rootCmd.AddCommand(NewTemplateCmd())
	rootCmd.AddCommand(NewExpandCmd())

	return rootCmd
}
