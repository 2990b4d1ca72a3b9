package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestNewJob(t *testing.T) {
	a := NewJob("a.docml", []byte("x"))
	b := NewJob("a.docml", []byte("x"))
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
	if a.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, a.Status)
	}
	if a.ContentHash != ContentHashHex([]byte("x")) {
		t.Errorf("expected content hash of source, got %q", a.ContentHash)
	}
	if string(a.FileData()) != "x" {
		t.Errorf("expected file data %q, got %q", "x", a.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusWriting, "writing"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJobStatus_Done(t *testing.T) {
	for status, want := range map[JobStatus]bool{
		StatusQueued:    false,
		StatusParsing:   false,
		StatusWriting:   false,
		StatusCompleted: true,
		StatusFailed:    true,
	} {
		if got := status.Done(); got != want {
			t.Errorf("%s.Done(): expected %v, got %v", status, want, got)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("parse: missing section ---meta---")
	job.AddError("write: permission denied")

	snap := job.Snapshot()
	if len(snap.Summary.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Summary.Errors))
	}
	if snap.Summary.Errors[0] != "parse: missing section ---meta---" {
		t.Errorf("expected first error %q, got %q", "parse: missing section ---meta---", snap.Summary.Errors[0])
	}

	// The snapshot must not alias the job's error slice.
	snap.Summary.Errors[0] = "changed"
	if job.Snapshot().Summary.Errors[0] == "changed" {
		t.Error("expected snapshot errors to be a copy")
	}
}

func TestJob_SetSummary(t *testing.T) {
	job := &Job{ID: "summary-test", UpdatedAt: time.Now()}
	job.SetSummary("Contrato", 5, 2, 16)

	snap := job.Snapshot()
	if snap.Summary.Title != "Contrato" || snap.Summary.Variables != 5 || snap.Summary.Roles != 2 || snap.Summary.Nodes != 16 {
		t.Errorf("unexpected summary %+v", snap.Summary)
	}
}

func TestJob_Result(t *testing.T) {
	job := NewJob("a.docml", []byte("src"))
	job.SetResult([]byte("{}"))
	if _, ok := job.Result(); ok {
		t.Error("expected no result before completion")
	}
	if job.FileData() != nil {
		t.Error("expected source bytes to be released once a result is set")
	}

	job.SetStatus(StatusCompleted, "done")
	got, ok := job.Result()
	if !ok || string(got) != "{}" {
		t.Errorf("expected result %q, got %q (ok=%v)", "{}", got, ok)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Summary.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Summary.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Summary.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", Status: StatusCompleted, UpdatedAt: time.Now()}
	running := &Job{ID: "running", Status: StatusParsing, UpdatedAt: time.Now()}
	store.Put(expired)
	store.Put(running)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", Status: StatusFailed, UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("running") == nil {
		t.Error("expected unfinished job to survive cleanup")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_Counts(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Put(&Job{ID: "a", Status: StatusQueued})
	store.Put(&Job{ID: "b", Status: StatusQueued})
	store.Put(&Job{ID: "c", Status: StatusCompleted})

	counts := store.Counts()
	if counts[StatusQueued] != 2 || counts[StatusCompleted] != 1 || counts[StatusFailed] != 0 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
