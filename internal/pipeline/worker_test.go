package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docml/internal/parser"
)

const sampleDocml = "---meta---\ntitle: Sample\n---roles---\nbuyer: B [order: 1]\n---content---\n# Hi [name|Name]\nBody"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorker_ProcessInMemory(t *testing.T) {
	w := NewWorker(parser.Options{}, discardLogger())
	job := NewJob("sample.docml", []byte(sampleDocml))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors: %v)", StatusCompleted, snap.Status, snap.Summary.Errors)
	}
	if snap.Summary.Title != "Sample" || snap.Summary.Variables != 1 || snap.Summary.Roles != 1 || snap.Summary.Nodes != 2 {
		t.Errorf("unexpected summary %+v", snap.Summary)
	}
	if o := snap.Summary.Outline; o == nil || len(o.Children) != 1 || o.Children[0].Title != "Hi Name" || o.Children[0].Words != 1 {
		t.Errorf("unexpected outline %+v", snap.Summary.Outline)
	}

	data, ok := job.Result()
	if !ok {
		t.Fatal("expected a result")
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if doc["version"] != "1.1.0" {
		t.Errorf("expected version %q, got %v", "1.1.0", doc["version"])
	}
}

func TestWorker_ProcessWritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	w := NewWorker(parser.Options{}, discardLogger())
	job := NewJob("sample.docml", []byte(sampleDocml))
	job.OutputPath = out

	w.Process(context.Background(), job)

	if status := job.Snapshot().Status; status != StatusCompleted {
		t.Fatalf("expected status %q, got %q", StatusCompleted, status)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.HasSuffix(string(data), "\n") {
		t.Error("expected no trailing newline in output file")
	}
}

func TestWorker_ProcessFailures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		output   string
		phase    string
		errPart  string
	}{
		{"unsupported format", "a.rtf", "x", "", "parsing", "unsupported file extension"},
		{"missing section", "a.docml", "---content---\nHi", "", "parsing", "missing section ---meta---"},
		{"unwritable output", "a.docml", sampleDocml, "/nonexistent-dir/x/out.json", "writing", "write:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorker(parser.Options{}, discardLogger())
			job := NewJob(tt.filename, []byte(tt.data))
			job.OutputPath = tt.output

			w.Process(context.Background(), job)

			snap := job.Snapshot()
			if snap.Status != StatusFailed {
				t.Fatalf("expected status %q, got %q", StatusFailed, snap.Status)
			}
			if snap.Phase != tt.phase {
				t.Errorf("expected phase %q, got %q", tt.phase, snap.Phase)
			}
			if len(snap.Summary.Errors) != 1 || !strings.Contains(snap.Summary.Errors[0], tt.errPart) {
				t.Errorf("expected error containing %q, got %v", tt.errPart, snap.Summary.Errors)
			}
			if _, ok := job.Result(); ok {
				t.Error("expected no result for failed job")
			}
		})
	}
}

func TestWorker_ProcessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWorker(parser.Options{}, discardLogger())
	job := NewJob("sample.docml", []byte(sampleDocml))
	w.Process(ctx, job)

	if snap := job.Snapshot(); snap.Status != StatusFailed || snap.Phase != "cancelled" {
		t.Errorf("expected failed/cancelled, got %s/%s", snap.Status, snap.Phase)
	}
}
