package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

type panicParser struct{}

func (panicParser) Parse([]byte) (string, error) {
	panic("corrupt xref table")
}

type failingParser struct{ err error }

func (p failingParser) Parse([]byte) (string, error) {
	return "", p.err
}

func TestExtract_PlainTextVerbatim(t *testing.T) {
	ex := New(ModeNative)
	input := "  Invoice total due: 42 EUR\n\tline two  "

	got, err := ex.Extract(context.Background(), []byte(input), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("extract plain text: %v", err)
	}
	if got != input {
		t.Fatalf("expected verbatim text %q, got %q", input, got)
	}
}

func TestExtract_InvalidUTF8(t *testing.T) {
	ex := New(ModeNative)

	_, err := ex.Extract(context.Background(), []byte{0xff, 0xfe, 'a'}, MimePlainText)
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractionErr.ContentType != MimePlainText {
		t.Fatalf("unexpected content type on error: %q", extractionErr.ContentType)
	}
}

func TestExtract_UnsupportedTypes(t *testing.T) {
	ex := New(ModeNative)
	cases := []string{"image/png", "application/zip", "", "text/html"}

	for _, contentType := range cases {
		t.Run(contentType, func(t *testing.T) {
			_, err := ex.Extract(context.Background(), []byte("data"), contentType)
			if !errors.Is(err, ErrUnsupportedType) {
				t.Fatalf("expected ErrUnsupportedType, got %v", err)
			}
			var typed *UnsupportedTypeError
			if !errors.As(err, &typed) {
				t.Fatalf("expected *UnsupportedTypeError, got %T", err)
			}
		})
	}
}

func TestExtract_PlaceholderMode(t *testing.T) {
	ex := New(ModePlaceholder)

	got, err := ex.Extract(context.Background(), []byte("not a pdf"), MimePDF)
	if err != nil {
		t.Fatalf("placeholder pdf: %v", err)
	}
	if got != PDFPlaceholderText {
		t.Fatalf("expected pdf placeholder, got %q", got)
	}

	got, err = ex.Extract(context.Background(), []byte("not a docx"), MimeDOCX)
	if err != nil {
		t.Fatalf("placeholder docx: %v", err)
	}
	if got != DOCXPlaceholderText {
		t.Fatalf("expected docx placeholder, got %q", got)
	}

	got, err = ex.Extract(context.Background(), []byte("plain"), MimePlainText)
	if err != nil || got != "plain" {
		t.Fatalf("plain text should still decode in placeholder mode, got %q, %v", got, err)
	}
}

func TestExtract_ParserPanicRecovered(t *testing.T) {
	ex := NewWithParsers(panicParser{}, nil)

	_, err := ex.Extract(context.Background(), []byte("%PDF-1.4"), MimePDF)
	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError after panic, got %v", err)
	}
}

func TestExtract_ParserErrorWrapped(t *testing.T) {
	cause := errors.New("bad header")
	ex := NewWithParsers(failingParser{err: cause}, nil)

	_, err := ex.Extract(context.Background(), []byte("x"), MimePDF)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ModeNative).Extract(ctx, []byte("text"), MimePlainText)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	cases := map[string]bool{
		"text/plain":               true,
		"TEXT/PLAIN; charset=utf8": true,
		MimePDF:                    true,
		MimeDOCX:                   true,
		"application/msword":       false,
		"image/jpeg":               false,
	}
	for contentType, want := range cases {
		if got := Supported(contentType); got != want {
			t.Fatalf("Supported(%q) = %v, want %v", contentType, got, want)
		}
	}
}

func TestNormalizeContentType(t *testing.T) {
	wordArchive := buildZip(t, map[string]string{"word/document.xml": "<w:document/>"})
	plainArchive := buildZip(t, map[string]string{"notes.txt": "hello"})

	cases := []struct {
		name        string
		contentType string
		fileName    string
		data        []byte
		want        string
	}{
		{name: "params dropped", contentType: "Text/Plain; charset=UTF-8", want: MimePlainText},
		{name: "zip with word part", contentType: "application/zip", fileName: "upload.bin", data: wordArchive, want: MimeDOCX},
		{name: "zip with docx extension", contentType: "application/zip", fileName: "Report.DOCX", data: []byte("junk"), want: MimeDOCX},
		{name: "real zip untouched", contentType: "application/zip", fileName: "notes.zip", data: plainArchive, want: "application/zip"},
		{name: "pdf untouched", contentType: "application/pdf", fileName: "a.pdf", want: MimePDF},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeContentType(tc.contentType, tc.fileName, tc.data); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
