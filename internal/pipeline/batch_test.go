package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"contract.docml", "contract.json"},
		{"dir/v1.2/contract.docml", "dir/v1.2/contract.json"},
		{"noext", "noext.json"},
	}
	for _, tt := range tests {
		if got := OutputPathFor(tt.in); got != tt.want {
			t.Errorf("OutputPathFor(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRunBatch_IsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.docml", sampleDocml)
	bad := writeFile(t, dir, "bad.docml", "---content---\nno meta")
	notes := writeFile(t, dir, "notes.md", "# Notes\n\ntext")
	missing := filepath.Join(dir, "missing.docml")

	inputs := []string{good, bad, notes, missing}
	results, err := RunBatch(context.Background(), inputs, BatchOptions{Workers: 2}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}
	for i, r := range results {
		if r.Input != inputs[i] {
			t.Errorf("result %d: expected input %q, got %q", i, inputs[i], r.Input)
		}
	}

	if results[0].Err != nil || results[0].Job.Status != StatusCompleted {
		t.Errorf("expected good input to complete, got %v", results[0].Err)
	}
	if _, err := os.Stat(filepath.Join(dir, "good.json")); err != nil {
		t.Errorf("expected good.json to be written: %v", err)
	}
	if results[1].Err == nil || results[1].Job.Status != StatusFailed {
		t.Error("expected source without meta to fail")
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.json")); !os.IsNotExist(err) {
		t.Error("expected no output for failed input")
	}
	if results[2].Err != nil {
		t.Errorf("expected markdown input to convert, got %v", results[2].Err)
	}
	if results[3].Err == nil || results[3].Job.Phase != "reading" {
		t.Errorf("expected missing file to fail while reading, got %+v", results[3].Job)
	}
	if n := Failed(results); n != 2 {
		t.Errorf("expected 2 failures, got %d", n)
	}
}

func TestRunBatch_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.docml", sampleDocml)
	out := filepath.Join(dir, "custom.json")

	results, err := RunBatch(context.Background(), []string{in}, BatchOptions{Output: out}, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Output != out || results[0].Err != nil {
		t.Errorf("unexpected result %+v", results[0])
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected %s to be written: %v", out, err)
	}
}

func TestRunBatch_OutputWithManyInputs(t *testing.T) {
	_, err := RunBatch(context.Background(), []string{"a.docml", "b.docml"}, BatchOptions{Output: "x.json"}, discardLogger())
	if !errors.Is(err, ErrOutputWithManyInputs) {
		t.Errorf("expected ErrOutputWithManyInputs, got %v", err)
	}
}
