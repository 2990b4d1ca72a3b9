package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// DocmlParser handles native .docml sources.
type DocmlParser struct {
	Options docml.Options
}

func (p *DocmlParser) Parse(r io.Reader, filename string) (*portabledoc.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return docml.Convert(string(src), p.Options)
}
