package extraction

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

// zipArchive builds an in-memory zip holding files in the given order
func zipArchive(t *testing.T, files [][2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Python developer</w:t></w:r></w:p></w:body>
</w:document>`

const odtContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text><text:p>Jane Doe</text:p><text:p>Go and Kubernetes</text:p></office:text></office:body>
</office:document-content>`

// minimalPDF returns a one-page PDF that draws line with the standard Helvetica font
func minimalPDF(line string) []byte {
	stream := fmt.Sprintf("BT /F1 24 Tf 72 700 Td (%s) Tj ET", line)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractor_Docx(t *testing.T) {
	path := writeFile(t, "resume.docx", zipArchive(t, [][2]string{
		{"[Content_Types].xml", docxContentTypes},
		{"word/document.xml", docxDocument},
	}))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)
	assert.Contains(t, txt, "Jane Doe")
	assert.Contains(t, txt, "Python developer")
}

func TestExtractor_ODT(t *testing.T) {
	path := writeFile(t, "resume.odt", zipArchive(t, [][2]string{
		{"mimetype", "application/vnd.oasis.opendocument.text"},
		{"content.xml", odtContent},
	}))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)
	assert.Contains(t, txt, "Jane Doe")
	assert.Contains(t, txt, "Go and Kubernetes")
}

func TestExtractor_PDF(t *testing.T) {
	for _, tool := range []string{"pdftotext", "pdfinfo"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not on PATH", tool)
		}
	}
	path := writeFile(t, "resume.pdf", minimalPDF("Python developer"))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)
	assert.Contains(t, txt, "Python developer")
}

func TestExtractor_DocxWithoutContentTypes(t *testing.T) {
	// A valid zip missing [Content_Types].xml makes the docx converter panic
	path := writeFile(t, "bad.docx", zipArchive(t, [][2]string{
		{"word/document.xml", docxDocument},
	}))

	var txt string
	var err error
	require.NotPanics(t, func() {
		txt, err = NewExtractor().Extract(path)
	})
	require.Error(t, err)
	assert.Empty(t, txt)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr), "error should be ExtractionError type")
	assert.Equal(t, FormatDocx, extErr.Format)
	assert.Equal(t, path, extErr.Path)
}

func TestExtractor_PlainText(t *testing.T) {
	path := writeFile(t, "resume.txt", []byte("\n  Jane Doe\r\nGo developer\r\n  "))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", txt)
}

func TestExtractor_PlainTextInvalidUTF8(t *testing.T) {
	path := writeFile(t, "resume.txt", []byte("Go \xff\xfe developer"))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Go \uFFFD developer", txt)
}

func TestExtractor_WhitespaceOnlyIsNoText(t *testing.T) {
	path := writeFile(t, "empty.txt", []byte(" \n\t\r\n "))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)
	assert.Empty(t, txt)
}

func TestExtractor_HTML(t *testing.T) {
	html := `<html><head><title>ignored title</title><style>.go { color: red }</style></head>
<body><h1>Jane Doe</h1><p>Go</p><p>Python</p><script>var kubernetes = 1;</script></body></html>`
	path := writeFile(t, "resume.html", []byte(html))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)

	assert.Contains(t, txt, "Jane Doe")
	assert.Contains(t, txt, "Go\n")
	assert.Contains(t, txt, "Python")
	assert.NotContains(t, txt, "kubernetes")
	assert.NotContains(t, txt, "color")
	assert.NotContains(t, txt, "ignored title")
}

func TestExtractor_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "resume.rtf", []byte("{\\rtf1 Go}"))

	txt, err := NewExtractor().Extract(path)
	require.NoError(t, err)
	assert.Empty(t, txt)
}

func TestExtractor_MissingFile(t *testing.T) {
	_, err := NewExtractor().Extract(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr), "error should be ExtractionError type")
	assert.Equal(t, FormatText, extErr.Format)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExtractor_CorruptDocx(t *testing.T) {
	path := writeFile(t, "resume.docx", []byte("this is not a zip archive"))

	_, err := NewExtractor().Extract(path)
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, FormatDocx, extErr.Format)
	assert.Contains(t, extErr.Error(), "resume.docx")
}
