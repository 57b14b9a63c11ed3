package extraction

import (
	"fmt"
	"io"
	"os"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/PuerkitoBio/goquery"
)

// TextExtractor produces the plain text of a document.
// An empty string with a nil error means the document has no extractable text.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// Extractor dispatches on the document format of each path
type Extractor struct{}

// NewExtractor returns a new Extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the whitespace-trimmed text of the document at path.
// Paths with an unsupported extension yield no text. A panic inside a converter on a malformed
// document is returned as an ExtractionError.
func (e *Extractor) Extract(path string) (text string, err error) {
	format := FormatFor(path)
	if format == FormatUnknown {
		return "", nil
	}

	defer func() {
		if r := recover(); r != nil {
			text, err = "", &ExtractionError{Path: path, Format: format, Cause: fmt.Errorf("converter panic: %v", r)}
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Format: format, Cause: err}
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatDocx:
		text, _, err = docconv.ConvertDocx(f)
	case FormatODT:
		text, _, err = docconv.ConvertODT(f)
	case FormatPDF:
		text, _, err = docconv.ConvertPDF(f)
	case FormatHTML:
		text, err = extractHTML(f)
	case FormatText:
		text, err = extractPlain(f)
	}
	if err != nil {
		return "", &ExtractionError{Path: path, Format: format, Cause: err}
	}

	return strings.TrimSpace(text), nil
}

// blockSelectors are the HTML elements that end a line of visible text
const blockSelectors = "p, div, li, br, tr, h1, h2, h3, h4, h5, h6, section, article, header, footer"

func extractHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find(blockSelectors).AppendHtml("\n")

	return doc.Find("body").Text(), nil
}

func extractPlain(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	text := strings.ToValidUTF8(string(content), "\uFFFD")
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return text, nil
}
