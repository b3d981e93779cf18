package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"querium-backend/internal/extract"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the plain text extracted from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildCore(opts)
			if err != nil {
				return err
			}
			doc, err := indexFile(cmd.Context(), app.DocumentsService, args[0], contentType)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.Content)
			return err
		},
	}

	cmd.Flags().StringVar(&contentType, "type", "", fmt.Sprintf("content type override (%s, %s, %s)", extract.MimePlainText, extract.MimePDF, extract.MimeDOCX))
	return cmd
}
