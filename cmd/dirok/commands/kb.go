package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dirok/internal/knowledgebase"
)

func newKBCmd(_ *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Knowledge base utilities",
	}

	var path string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate a knowledge base file",
		Long:  "Load a knowledge base file and report its size, or the first problem found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := knowledgebase.Load(path)
			if err != nil {
				return err
			}
			symptoms, diseases, rules := kb.Counts()
			source := path
			if source == "" {
				source = "built-in knowledge base"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d symptoms, %d diseases, %d rules)\n", source, symptoms, diseases, rules)
			return nil
		},
	}
	validate.Flags().StringVar(&path, "kb", "", "Path to the knowledge base file (default: built-in)")

	cmd.AddCommand(validate)
	return cmd
}
