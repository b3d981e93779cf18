package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		files []string
		scope string
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Index local files and answer a question from them",
		Example: `  querium ask --file invoice.pdf --file notes.txt "when is the total due?"
  querium ask --file a.txt --file b.txt --scope b.txt "meeting"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return errors.New("question is required")
			}
			if len(files) == 0 {
				return errors.New("at least one --file is required")
			}

			app, err := buildCore(opts)
			if err != nil {
				return err
			}

			scopeID := ""
			for _, path := range files {
				doc, err := indexFile(cmd.Context(), app.DocumentsService, path, "")
				if err != nil {
					return err
				}
				if scope != "" && (scope == path || scope == filepath.Base(path)) {
					scopeID = doc.ID
				}
			}
			if scope != "" && scopeID == "" {
				return fmt.Errorf("scope %q does not name one of the --file arguments", scope)
			}

			answer := app.Composer.Compose(cmd.Context(), question, scopeID)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, answer.Text)
			if len(answer.Sources) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Sources:")
				for _, source := range answer.Sources {
					fmt.Fprintf(out, "  - %s\n", source)
				}
			}
			return answer.Err
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "document to index (repeatable)")
	cmd.Flags().StringVar(&scope, "scope", "", "restrict the answer to one of the indexed files")
	return cmd
}
