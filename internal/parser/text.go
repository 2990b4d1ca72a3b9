package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// TextParser handles plain text files. Blank lines separate paragraphs and
// each paragraph goes through the inline tokenizer.
type TextParser struct {
	Options docml.Options
}

func (p *TextParser) Parse(r io.Reader, filename string) (*portabledoc.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var blocks []portabledoc.Block
	for _, para := range paragraphs(lines) {
		blocks = append(blocks, portabledoc.Paragraph{Content: docml.Tokenize(para)})
	}
	return imported(filename, blocks, p.Options), nil
}

// paragraphs groups non-blank lines separated by blank ones, joining the
// lines of a group with a single space.
func paragraphs(lines []string) []string {
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = current[:0]
		}
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}
