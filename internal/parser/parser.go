package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// Parser converts raw document bytes into a portable document.
type Parser interface {
	Parse(r io.Reader, filename string) (*portabledoc.Document, error)
}

// Options configures the parsers returned by ForFile.
type Options struct {
	// Convert carries the export clock into every document.
	Convert docml.Options

	// PDFFallbackPdftotext retries PDF extraction with the pdftotext binary.
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".docml":    true,
	".txt":      true,
	".csv":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docml":
		return &DocmlParser{Options: opts.Convert}, nil
	case ".txt":
		return &TextParser{Options: opts.Convert}, nil
	case ".csv":
		return &CSVParser{Options: opts.Convert}, nil
	case ".md", ".markdown":
		return &MarkdownParser{Options: opts.Convert}, nil
	case ".html", ".htm":
		return &HTMLParser{Options: opts.Convert}, nil
	case ".pdf":
		return &PDFParser{Options: opts.Convert, FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{Options: opts.Convert}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// TitleFromFilename is the document title importers use: the base name
// without its extension.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func imported(filename string, blocks []portabledoc.Block, opts docml.Options) *portabledoc.Document {
	return docml.ImportedDocument(TitleFromFilename(filename), blocks, opts.ExportTime())
}
