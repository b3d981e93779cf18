package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	MimePlainText = "text/plain"
	MimePDF       = "application/pdf"
	MimeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	mimeZip = "application/zip"
)

// Placeholder texts returned when a format's parser is disabled.
const (
	PDFPlaceholderText  = "PDF text extraction is not available on this server"
	DOCXPlaceholderText = "DOCX text extraction is not available on this server"
)

// Mode selects the parsers an Extractor is built with.
type Mode string

const (
	ModeNative      Mode = "native"
	ModePlaceholder Mode = "placeholder"
)

// Parser turns the bytes of one document format into plain text.
type Parser interface {
	Parse(data []byte) (string, error)
}

// Extractor dispatches raw bytes to the parser registered for their content type.
type Extractor struct {
	pdf  Parser
	docx Parser
}

// New builds an Extractor. ModePlaceholder swaps the PDF and DOCX parsers for
// fixed-text stand-ins; plain text is always decoded.
func New(mode Mode) *Extractor {
	if mode == ModePlaceholder {
		return NewWithParsers(Placeholder{Text: PDFPlaceholderText}, Placeholder{Text: DOCXPlaceholderText})
	}
	return NewWithParsers(PDFParser{}, DOCXParser{})
}

// NewWithParsers builds an Extractor from explicit parsers. Nil parsers fall back to placeholders.
func NewWithParsers(pdf, docx Parser) *Extractor {
	if pdf == nil {
		pdf = Placeholder{Text: PDFPlaceholderText}
	}
	if docx == nil {
		docx = Placeholder{Text: DOCXPlaceholderText}
	}
	return &Extractor{pdf: pdf, docx: docx}
}

// Supported reports whether contentType can be extracted.
func Supported(contentType string) bool {
	switch cleanMimeType(contentType) {
	case MimePlainText, MimePDF, MimeDOCX:
		return true
	default:
		return false
	}
}

// Extract returns the plain text of data interpreted as contentType.
// Unknown types fail with *UnsupportedTypeError, malformed input with *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, data []byte, contentType string) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	normalized := cleanMimeType(contentType)
	var parser Parser
	switch normalized {
	case MimePlainText:
		parser = plainTextParser{}
	case MimePDF:
		parser = e.pdf
	case MimeDOCX:
		parser = e.docx
	default:
		return "", &UnsupportedTypeError{ContentType: normalized}
	}

	// Third-party parsers panic on some corrupt inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &ExtractionError{ContentType: normalized, Err: fmt.Errorf("parser panic: %v", rec)}
		}
	}()

	text, err = parser.Parse(data)
	if err != nil {
		return "", &ExtractionError{ContentType: normalized, Err: err}
	}
	return text, nil
}

type plainTextParser struct{}

func (plainTextParser) Parse(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text is not valid UTF-8")
	}
	return string(data), nil
}

// Placeholder is the degraded-mode parser: it ignores its input and returns Text.
type Placeholder struct {
	Text string
}

func (p Placeholder) Parse(data []byte) (string, error) {
	return p.Text, nil
}

// NormalizeContentType lower-cases the declared type and drops parameters.
// Browsers sometimes declare .docx uploads as application/zip; those are
// mapped to the DOCX type when the archive or file name says so.
func NormalizeContentType(contentType string, fileName string, data []byte) string {
	clean := cleanMimeType(contentType)
	if clean != mimeZip {
		return clean
	}
	if isWordArchive(data) || strings.EqualFold(filepath.Ext(fileName), ".docx") {
		return MimeDOCX
	}
	return clean
}

func cleanMimeType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
}

func isWordArchive(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
