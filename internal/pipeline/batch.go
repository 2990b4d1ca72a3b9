package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgallion1/docml/internal/parser"
)

// ErrOutputWithManyInputs is returned when an explicit output path is given
// for more than one input.
var ErrOutputWithManyInputs = errors.New("output path can only be used with a single input")

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Output overrides the output path. Only valid with one input.
	Output string
	// Workers bounds the number of files converted at once.
	Workers int
	Parser  parser.Options
}

// BatchResult is the outcome of converting one input file.
type BatchResult struct {
	Input  string
	Output string
	Job    JobSnapshot
	Err    error
}

// OutputPathFor returns the default output path for an input: the same
// path with its extension replaced by .json.
func OutputPathFor(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
}

// RunBatch converts every input file and writes its document next to it.
// A failing file does not stop the others. Results are returned in input
// order.
func RunBatch(ctx context.Context, inputs []string, opts BatchOptions, log *slog.Logger) ([]BatchResult, error) {
	if opts.Output != "" && len(inputs) > 1 {
		return nil, ErrOutputWithManyInputs
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	w := NewWorker(opts.Parser, log)
	results := make([]BatchResult, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, input := range inputs {
		output := opts.Output
		if output == "" {
			output = OutputPathFor(input)
		}
		results[i] = BatchResult{Input: input, Output: output}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		}
		wg.Add(1)
		go func(r *BatchResult) {
			defer wg.Done()
			defer func() { <-sem }()
			convertFile(ctx, w, r)
		}(&results[i])
	}
	wg.Wait()
	return results, nil
}

func convertFile(ctx context.Context, w *Worker, r *BatchResult) {
	data, err := os.ReadFile(r.Input)
	job := NewJob(r.Input, data)
	job.OutputPath = r.Output
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		r.Job = job.Snapshot()
		r.Err = fmt.Errorf("read %s: %w", r.Input, err)
		return
	}

	w.Process(ctx, job)
	r.Job = job.Snapshot()
	if r.Job.Status != StatusCompleted {
		r.Err = fmt.Errorf("%s: %s", r.Input, strings.Join(r.Job.Summary.Errors, "; "))
	}
}

// Failed counts the results that carry an error.
func Failed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
