package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/google/go-cmp/cmp"

	pd "github.com/dgallion1/docml/internal/portabledoc"
)

func TestDOCXParser_Paragraphs(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("Dear **[client|Client]**,")
	w.AddParagraph()
	w.AddParagraph().AddText("Thanks.")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	p := &DOCXParser{}
	doc, err := p.Parse(&buf, "letter.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.Title != "letter" {
		t.Errorf("expected title %q, got %q", "letter", doc.Meta.Title)
	}
	want := []pd.Block{
		pd.Paragraph{Content: []pd.Inline{
			pd.Text{Text: "Dear "},
			pd.Injector{VariableID: "client", Label: "Client", Type: "TEXT"},
			pd.Text{Text: ","},
		}},
		pd.Paragraph{Content: plain("Thanks.")},
	}
	if diff := cmp.Diff(want, doc.Content.Content); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestDOCXParser_InvalidInput(t *testing.T) {
	p := &DOCXParser{}
	if _, err := p.Parse(strings.NewReader("not a zip"), "broken.docx"); err == nil {
		t.Error("expected error for invalid docx")
	}
}
