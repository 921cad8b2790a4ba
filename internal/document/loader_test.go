package document

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Experience</w:t></w:r></w:p>
    <w:p><w:r><w:t>Built</w:t><w:tab/><w:t xml:space="preserve">tools </w:t></w:r><w:r><w:t>in Go</w:t></w:r></w:p>
    <w:p><w:r><w:t>line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Skills</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  </w:body>
</w:document>`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeDOCX(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	if body != "" {
		w, err = zw.Create("word/document.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func writePDF(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.Cell(0, 10, line)
		doc.Ln(12)
	}
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"cv.pdf", FormatPDF, true},
		{"CV.PDF", FormatPDF, true},
		{"cv.docx", FormatDOCX, true},
		{"cv.txt", FormatText, true},
		{"notes.md", FormatText, true},
		{"cv.html", FormatHTML, true},
		{"cv.htm", FormatHTML, true},
		{"cv.doc", "", false},
		{"cv", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, ok := FormatFor(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".docx", ".htm", ".html", ".md", ".pdf", ".txt"}, SupportedExtensions())
}

func TestLoad_Text(t *testing.T) {
	path := writeFile(t, "cv.txt", append([]byte{0xEF, 0xBB, 0xBF}, "Skills\n\n\nGo"...))

	text, err := NewFileLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Skills\n\n\nGo", text)
}

func TestLoad_DOCX(t *testing.T) {
	path := writeDOCX(t, "cv.docx", documentXML)

	text, err := NewFileLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Experience\nBuilt\ttools in Go\nline one\nline two\nSkills\n", text)
}

func TestLoad_DOCXWithoutBody(t *testing.T) {
	path := writeDOCX(t, "empty.docx", "")

	_, err := NewFileLoader().Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoad_PDF(t *testing.T) {
	path := writePDF(t, "cv.pdf", "Experience", "Developed 3 tools")

	text, err := NewFileLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Experience")
	assert.Contains(t, text, "Developed 3 tools")
}

func TestLoad_CorruptPDF(t *testing.T) {
	path := writeFile(t, "cv.pdf", []byte("definitely not a pdf"))

	_, err := NewFileLoader().Load(context.Background(), path)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, path, loadErr.Path)
	assert.Equal(t, "pdf", loadErr.Format)
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestLoad_HTML(t *testing.T) {
	page := `<html><head><style>p{}</style></head><body>
<nav>ignored?</nav>
<main><h2>Experience</h2><ul><li>Led a team of 5</li></ul><script>alert(1)</script></main>
</body></html>`
	path := writeFile(t, "cv.html", []byte(page))

	text, err := NewFileLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, text, "Experience")
	assert.Contains(t, text, "Led a team of 5")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "ignored")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "unsupported", path: writeFile(t, "cv.rtf", []byte("{\\rtf1}")), want: ErrUnsupportedFormat},
		{name: "missing", path: filepath.Join(dir, "absent.pdf"), want: ErrNotFound},
		{name: "directory", path: mkdir(t, filepath.Join(dir, "folder.txt")), want: ErrUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(context.Background(), tt.path)
			assert.ErrorIs(t, err, tt.want)

			var loadErr *LoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func mkdir(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.Mkdir(path, 0o755))
	return path
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader().Load(ctx, "cv.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadError_Message(t *testing.T) {
	err := &LoadError{Path: "cv.rtf", Format: "rtf", Err: ErrUnsupportedFormat}
	assert.Equal(t, "loading cv.rtf (rtf): unsupported document format", err.Error())

	err = &LoadError{Path: "cv", Err: ErrNotFound}
	assert.True(t, strings.HasPrefix(err.Error(), "loading cv: "))
}

func TestLoad_UsesCache(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	loader := NewFileLoader(WithCache(cache), WithLogger(zap.New(core)))

	path := writeDOCX(t, "cv.docx", documentXML)
	first, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	second, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, logs.FilterMessage("document decoded").Len())
	assert.Equal(t, 1, logs.FilterMessage("text cache hit").Len())
}
