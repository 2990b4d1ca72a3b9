package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/docml/internal/docml"
	"github.com/dgallion1/docml/internal/parser"
	"github.com/dgallion1/docml/internal/portabledoc"
)

const defaultFilename = "document.docml"

// handleConvert converts the raw request body synchronously. The filename
// query parameter selects the importer.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	filename := defaultFilename
	if v := r.URL.Query().Get("filename"); v != "" {
		filename = sanitizeFilename(v)
	}
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(filename, s.opts)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	switch {
	case errors.Is(err, docml.ErrMissingSection):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := portabledoc.Marshal(doc)
	if err != nil {
		s.log.Error("encode document", "filename", filename, "error", err)
		jsonError(w, "failed to encode document", http.StatusInternalServerError)
		return
	}
	s.log.Info("converted",
		"filename", filename,
		"variables", len(doc.VariableIDs),
		"roles", len(doc.SignerRoles),
		"nodes", len(doc.Content.Content),
	)
	writeRawJSON(w, http.StatusOK, out)
}

func writeRawJSON(w http.ResponseWriter, code int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
