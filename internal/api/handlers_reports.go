package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rcalloway/notesynth/internal/jobs"
	"github.com/rcalloway/notesynth/internal/parser"
)

type createReportRequest struct {
	Instruction   string `json:"instruction"`
	ReferenceText string `json:"reference_text"`
	NoteID        string `json:"note_id"`
}

// handleCreateReport accepts either a JSON body with inline reference text or
// a multipart form with a reference file, gate-checks the request, and queues
// a report job.
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		parsed, err := s.parseMultipartReport(w, r)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		req = parsed
	} else {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	if strings.TrimSpace(req.Instruction) == "" {
		jsonError(w, "instruction is required", http.StatusBadRequest)
		return
	}

	if !s.pipeline.ShouldActivate(req.Instruction, req.ReferenceText) {
		// Not a multi-stage request; the caller should fall back to its
		// simpler single-pass generation path.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"activated": false,
			"hint":      "single_pass",
		})
		return
	}

	job := jobs.NewJob(req.NoteID, req.Instruction, req.ReferenceText)
	if err := s.runner.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"activated": true,
		"job_id":    job.ID,
		"poll_url":  fmt.Sprintf("/api/reports/%s", job.ID),
	})
}

// parseMultipartReport reads the instruction plus an attached reference file
// and flattens the parsed file into reference text.
func (s *Server) parseMultipartReport(w http.ResponseWriter, r *http.Request) (createReportRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return createReportRequest{}, fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	req := createReportRequest{
		Instruction: r.FormValue("instruction"),
		NoteID:      r.FormValue("note_id"),
	}

	file, header, err := r.FormFile("reference_file")
	if err != nil {
		return createReportRequest{}, fmt.Errorf("reference_file is required: %w", err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		return createReportRequest{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return createReportRequest{}, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return createReportRequest{}, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		return createReportRequest{}, err
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return createReportRequest{}, fmt.Errorf("parse %s: %w", filename, err)
	}
	req.ReferenceText = doc.Flatten()
	return req, nil
}

func (s *Server) handleReportStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.runner.Get(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleCancelReport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.runner.Get(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	job.Cancel()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"job_id": jobID, "cancelling": true})
}

type gateRequest struct {
	Instruction   string `json:"instruction"`
	ReferenceText string `json:"reference_text"`
}

// handleGate exposes the activation predicate so hosts can pick a strategy
// before committing to the multi-stage path.
func (s *Server) handleGate(w http.ResponseWriter, r *http.Request) {
	var req gateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"activate": s.pipeline.ShouldActivate(req.Instruction, req.ReferenceText),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
