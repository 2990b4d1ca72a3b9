package docml

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	pd "github.com/dgallion1/docml/internal/portabledoc"
)

func TestParseMeta(t *testing.T) {
	meta, page := ParseMeta([]string{
		"title: Contrato: compraventa",
		"",
		"description:   A sale  ",
		"page: a4",
		"margins: 48",
	})
	wantMeta := pd.Meta{Title: "Contrato: compraventa", Description: "A sale", Language: "es"}
	if diff := cmp.Diff(wantMeta, meta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}
	wantPage := pd.PageConfig{
		FormatID: "A4",
		Width:    794,
		Height:   1123,
		Margins:  pd.Margins{Top: 48, Bottom: 48, Left: 48, Right: 48},
	}
	if diff := cmp.Diff(wantPage, page); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMeta_Defaults(t *testing.T) {
	meta, page := ParseMeta([]string{"margins: wide", "junk line"})
	if meta.Language != DefaultLanguage {
		t.Errorf("expected absent language to default to %q, got %q", DefaultLanguage, meta.Language)
	}
	if meta.Title != "" {
		t.Errorf("expected empty title, got %q", meta.Title)
	}
	if diff := cmp.Diff(DefaultPageConfig(), page); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMeta_BlankValuesStayBlank(t *testing.T) {
	meta, page := ParseMeta([]string{"language:", "page:  ", "margins:"})
	if meta.Language != "" {
		t.Errorf("expected blank language, got %q", meta.Language)
	}
	wantPage := pd.PageConfig{
		FormatID: "",
		Width:    816,
		Height:   1056,
		Margins:  pd.UniformMargins(DefaultMargins),
	}
	if diff := cmp.Diff(wantPage, page); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestPageConfigFor(t *testing.T) {
	tests := []struct {
		format        string
		id            string
		width, height int
	}{
		{"LETTER", "LETTER", 816, 1056},
		{"legal", "LEGAL", 816, 1344},
		{"A4", "A4", 794, 1123},
		{"b5", "B5", 816, 1056},
	}
	for _, tt := range tests {
		got := PageConfigFor(tt.format, 10)
		if got.FormatID != tt.id || got.Width != tt.width || got.Height != tt.height {
			t.Errorf("PageConfigFor(%q): expected %s %dx%d, got %s %dx%d",
				tt.format, tt.id, tt.width, tt.height, got.FormatID, got.Width, got.Height)
		}
	}
}

func TestParseWorkflow(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"absent", nil, "sequential"},
		{"parallel", []string{"mode: parallel"}, "parallel"},
		{"last wins", []string{"mode: parallel", "  mode: sequential  "}, "sequential"},
		{"blank kept", []string{"mode: parallel", "mode:"}, ""},
		{"other keys ignored", []string{"order: parallel"}, "sequential"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWorkflow(tt.lines)
			if got.OrderMode != tt.want {
				t.Errorf("expected mode %q, got %q", tt.want, got.OrderMode)
			}
		})
	}
}

func TestDefaultWorkflow_Triggers(t *testing.T) {
	wf := DefaultWorkflow()
	n := wf.Notifications
	if n.Scope != "global" {
		t.Errorf("expected global scope, got %q", n.Scope)
	}
	tr := n.GlobalTriggers
	if tr.OnDocumentCreated.Enabled || tr.OnPreviousRolesSigned.Enabled || tr.OnAllSignaturesComplete.Enabled {
		t.Errorf("expected only on_turn_to_sign enabled, got %+v", tr)
	}
	if !tr.OnTurnToSign.Enabled {
		t.Error("expected on_turn_to_sign enabled")
	}
	prc := tr.OnPreviousRolesSigned.PreviousRolesConfig
	if prc == nil || prc.Mode != "auto" || prc.SelectedRoleIDs == nil {
		t.Errorf("expected auto previous roles config with empty selection, got %+v", prc)
	}
	if n.RoleConfigs == nil {
		t.Error("expected non-nil role configs")
	}
}
