package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/doctree"
	"github.com/dgallion1/docml/internal/parser"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// Worker converts a single document job.
type Worker struct {
	opts parser.Options
	log  *slog.Logger
}

func NewWorker(opts parser.Options, log *slog.Logger) *Worker {
	return &Worker{opts: opts, log: log}
}

// Process parses the job's source, encodes the document and either writes
// it to the job's output path or keeps it as the job result.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.opts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		if errors.Is(err, docml.ErrMissingSection) {
			log.Warn("incomplete source", "error", err)
		} else {
			log.Error("parse failed", "error", err)
		}
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetSummary(doc.Meta.Title, len(doc.VariableIDs), len(doc.SignerRoles), len(doc.Content.Content))
	job.SetOutline(doctree.Build(doc))

	data, err := portabledoc.Marshal(doc)
	if err != nil {
		log.Error("encode failed", "error", err)
		job.AddError(fmt.Sprintf("encode: %s", err))
		job.SetStatus(StatusFailed, "encoding")
		return
	}

	// Phase 2: Write
	if job.OutputPath != "" {
		job.SetStatus(StatusWriting, "writing")
		if err := os.WriteFile(job.OutputPath, data, 0o644); err != nil {
			log.Error("write failed", "path", job.OutputPath, "error", err)
			job.AddError(fmt.Sprintf("write: %s", err))
			job.SetStatus(StatusFailed, "writing")
			return
		}
	}

	job.SetResult(data)
	job.SetStatus(StatusCompleted, "done")
	log.Info("converted document",
		"variables", len(doc.VariableIDs),
		"roles", len(doc.SignerRoles),
		"nodes", len(doc.Content.Content),
	)
}
