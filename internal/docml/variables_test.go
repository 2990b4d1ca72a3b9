package docml

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pd "github.com/dgallion1/docml/internal/portabledoc"
)

func inj(id string) pd.Injector {
	return pd.Injector{VariableID: id, Label: id, Type: pd.InjectorTypeText}
}

func TestCollectVariables(t *testing.T) {
	blocks := []pd.Block{
		pd.Paragraph{Content: []pd.Inline{inj("b"), pd.Text{Text: "x"}, inj("a")}},
		pd.Heading{Level: 1, Content: []pd.Inline{inj("a")}},
		pd.Table{Rows: []pd.TableRow{{Cells: []pd.TableCell{
			{Header: true, Content: []pd.Inline{inj("t")}},
		}}}},
		pd.BulletList{Items: []pd.ListItem{{Paragraph: pd.Paragraph{Content: []pd.Inline{inj("l")}}}}},
		pd.OrderedList{Items: []pd.ListItem{{Paragraph: pd.Paragraph{Content: []pd.Inline{inj("o")}}}}},
		pd.Signature{Count: 0},
		pd.Paragraph{Content: []pd.Inline{pd.Injector{}}},
	}
	got := CollectVariables(blocks)
	want := []string{"a", "b", "l", "o", "t"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CollectVariables mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectVariables_NoneIsEmpty(t *testing.T) {
	got := CollectVariables(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestCollectVariables_FromSource(t *testing.T) {
	blocks := ParseBlocks([]string{
		"[b|B] and [a|A]",
		"- [a|Again]",
		"|[c|C]|",
	}, nil)
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, CollectVariables(blocks)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
