package main

import (
	"github.com/spf13/cobra"

	"github.com/soundshield/subgen/cmd/subgen/config"
)

func newRootCommand(cfg config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subgen",
		Short:         "Generate subtitle files from speech recognition transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newGenerateCommand(cfg))
	rootCmd.AddCommand(newInspectCommand(cfg))
	rootCmd.AddCommand(newWatchCommand(cfg))

	return rootCmd
}
