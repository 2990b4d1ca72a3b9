package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled. Each page contributes its
// paragraphs, and a page break separates consecutive non-empty pages.
type PDFParser struct {
	Options           docml.Options
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*portabledoc.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docml-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return imported(filename, pageBlocks(splitPages(text)), p.Options), nil
}

// pageBlocks turns extracted page texts into paragraphs. Extracted text is
// not docml markup, so only placeholders are recognized.
func pageBlocks(pages []string) []portabledoc.Block {
	var blocks []portabledoc.Block
	for _, page := range pages {
		paras := paragraphs(strings.Split(page, "\n"))
		if len(paras) == 0 {
			continue
		}
		if len(blocks) > 0 {
			blocks = append(blocks, portabledoc.PageBreak{})
		}
		for _, para := range paras {
			blocks = append(blocks, portabledoc.Paragraph{Content: docml.SplitPlaceholders(para, nil)})
		}
	}
	return blocks
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func splitPages(text string) []string {
	return strings.Split(text, "\f")
}
