// Command docml2json converts docml sources (and other document formats)
// into PortableDocument JSON, either in batch or as an HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/dgallion1/docml/internal/api"
	"github.com/dgallion1/docml/internal/config"
	"github.com/dgallion1/docml/internal/parser"
	"github.com/dgallion1/docml/internal/pipeline"
	"github.com/dgallion1/docml/internal/portabledoc"
)

// CLI defines the command-line interface for docml2json.
var CLI struct {
	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert files to PortableDocument JSON"`
	Serve   ServeCmd   `cmd:"" help:"Start the conversion HTTP API"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts one or more input files.
type ConvertCmd struct {
	Inputs      []string `arg:"" name:"input" help:"Files to convert (.docml, .md, .html, .txt, .csv, .docx, .pdf)"`
	Output      string   `short:"o" help:"Output file (only with a single input)" type:"path"`
	Workers     int      `default:"4" help:"Files converted at once"`
	NoPdftotext bool     `name:"no-pdftotext" help:"Disable the pdftotext fallback for PDFs"`
	Outline     bool     `help:"Print the heading outline of each converted file"`
}

func (c *ConvertCmd) Run() error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	opts := pipeline.BatchOptions{
		Output:  c.Output,
		Workers: c.Workers,
		Parser:  parser.Options{PDFFallbackPdftotext: !c.NoPdftotext},
	}
	results, err := pipeline.RunBatch(context.Background(), c.Inputs, opts, log)
	if errors.Is(err, pipeline.ErrOutputWithManyInputs) {
		return fmt.Errorf("-o/--output: %w", err)
	}
	if err != nil {
		return err
	}
	if n := report(os.Stdout, os.Stderr, results, c.Outline); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(results))
	}
	return nil
}

// report prints one summary per converted file and one error line per
// failure. It returns the number of failures.
func report(out, errOut io.Writer, results []pipeline.BatchResult, outline bool) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "  error in %s: %v\n", r.Input, r.Err)
			failed++
			continue
		}
		s := r.Job.Summary
		fmt.Fprintf(out, "  %s -> %s\n", filepath.Base(r.Input), filepath.Base(r.Output))
		fmt.Fprintf(out, "  variables=%d  roles=%d  nodes=%d\n", s.Variables, s.Roles, s.Nodes)
		if outline && s.Outline != nil {
			for _, bc := range s.Outline.Breadcrumbs() {
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", len(bc)+1), bc[len(bc)-1])
			}
		}
	}
	return failed
}

// ServeCmd runs the HTTP API until SIGINT or SIGTERM.
type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}

	orch := pipeline.NewOrchestrator(cfg, opts, log)
	orch.Start(ctx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(orch, opts, log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting docml2json", "port", cfg.Port, "workers", cfg.WorkerCount)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			orch.Stop()
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down...")
	}

	// Stop accepting submissions before the queue is closed.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
	orch.Stop()
	return nil
}

// VersionCmd prints the output format version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("docml2json (PortableDocument %s)\n", portabledoc.Version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("docml2json"),
		kong.Description("Convert docml files to PortableDocument JSON"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
