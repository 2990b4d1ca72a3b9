package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pd "github.com/dgallion1/docml/internal/portabledoc"
)

func TestCSVParser_Table(t *testing.T) {
	input := "Name, Price\nWidget,[price|Price|CURRENCY]\n\"Big, box\",3,extra\n"
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(input), "prices.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.Title != "prices" {
		t.Errorf("expected title %q, got %q", "prices", doc.Meta.Title)
	}
	want := []pd.Block{pd.Table{Rows: []pd.TableRow{
		{Cells: []pd.TableCell{
			{Header: true, Content: plain("Name")},
			{Header: true, Content: plain("Price")},
		}},
		{Cells: []pd.TableCell{
			{Content: plain("Widget")},
			{Content: []pd.Inline{pd.Injector{VariableID: "price", Label: "Price", Type: "CURRENCY"}}},
		}},
		{Cells: []pd.TableCell{
			{Content: plain("Big, box")},
			{Content: plain("3")},
			{Content: plain("extra")},
		}},
	}}}
	if diff := cmp.Diff(want, doc.Content.Content); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"price"}, doc.VariableIDs); diff != "" {
		t.Errorf("variableIds mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Content.Content) != 0 {
		t.Errorf("expected 0 blocks, got %d", len(doc.Content.Content))
	}
}
