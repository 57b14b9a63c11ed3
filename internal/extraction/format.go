package extraction

import (
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies a supported document family
type Format int

const (
	FormatUnknown Format = iota
	FormatDocx
	FormatPDF
	FormatText
	FormatODT
	FormatHTML
)

var extensionFormats = map[string]Format{
	".docx": FormatDocx,
	".pdf":  FormatPDF,
	".txt":  FormatText,
	".odt":  FormatODT,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

func (f Format) String() string {
	switch f {
	case FormatDocx:
		return "docx"
	case FormatPDF:
		return "pdf"
	case FormatText:
		return "text"
	case FormatODT:
		return "odt"
	case FormatHTML:
		return "html"
	default:
		return "unknown"
	}
}

// FormatFor maps a path to its document format by extension (case-insensitive)
func FormatFor(path string) Format {
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatUnknown
}

// Supported reports whether path has an extension the extractor can handle
func Supported(path string) bool {
	return FormatFor(path) != FormatUnknown
}

// SupportedExtensions returns the supported extensions in sorted order
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionFormats))
	for ext := range extensionFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
