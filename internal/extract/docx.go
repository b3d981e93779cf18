package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DOCXParser extracts body paragraphs from word/document.xml.
// Paragraphs nested in tables or content controls are skipped.
type DOCXParser struct{}

func (DOCXParser) Parse(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := bodyParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

func bodyParagraphs(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		paraDepth  int
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			name := t.Name.Local
			if paraDepth == 0 && name == "p" && parent == "body" {
				paraDepth = len(stack) + 1
				current.Reset()
			} else if paraDepth > 0 && parent == "r" {
				switch name {
				case "t":
					inText = true
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					current.WriteByte('\n')
				}
			}
			stack = append(stack, name)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if t.Name.Local == "t" {
				inText = false
			}
			if paraDepth > 0 && len(stack) == paraDepth-1 {
				paragraphs = append(paragraphs, current.String())
				paraDepth = 0
			}
		case xml.CharData:
			if inText && paraDepth > 0 {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
