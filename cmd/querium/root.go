package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"querium-backend/internal/bootstrap"
	"querium-backend/internal/documents"
	"querium-backend/internal/extract"
	"querium-backend/internal/shared/config"
	"querium-backend/internal/shared/telemetry"
)

// loadConfig is swapped in tests.
var loadConfig = config.Load

type rootOptions struct {
	logLevel      string
	extractorMode string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "querium",
		Short:         "Extract, index and query documents locally",
		Long:          `querium runs the document extractor, keyword index and answer composer in-process on local files, without the HTTP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.SetOutput(cmd.ErrOrStderr(), opts.logLevel, false)
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.extractorMode, "extractor", "", "extractor mode: native or placeholder (default from EXTRACTOR_MODE)")

	root.AddCommand(newExtractCmd(opts), newAskCmd(opts))
	return root
}

// buildCore builds the in-process app. Archiving is always off for the CLI.
func buildCore(opts *rootOptions) (*bootstrap.App, error) {
	cfg := loadConfig()
	cfg.ArchiveStore = "none"
	if opts.extractorMode != "" {
		cfg.ExtractorMode = opts.extractorMode
	}
	return bootstrap.BuildCore(cfg)
}

func indexFile(ctx context.Context, svc *documents.Service, path, contentType string) (documents.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return documents.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	if contentType == "" {
		contentType = contentTypeFor(path)
	}
	doc, err := svc.Upload(ctx, filepath.Base(path), contentType, data)
	if err != nil {
		return documents.Document{}, fmt.Errorf("index %s: %w", path, err)
	}
	return doc, nil
}

func contentTypeFor(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".text", ".md":
		return extract.MimePlainText
	case ".pdf":
		return extract.MimePDF
	case ".docx":
		return extract.MimeDOCX
	default:
		return mime.TypeByExtension(ext)
	}
}
