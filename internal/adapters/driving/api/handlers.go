package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/kgingest/internal/adapters/driving/upload"
	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/detector"
)

// uploadField is the multipart field carrying the file.
const uploadField = "file"

// ingestResponse is returned by the upload and URL endpoints.
type ingestResponse struct {
	Document  *domain.Document          `json:"document"`
	Processed *domain.ProcessedDocument `json:"processed"`
}

// urlRequest is the body of POST /api/data/documents/url.
type urlRequest struct {
	URL string `json:"url"`
}

// detectRequest is the body of POST /api/detect.
type detectRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content,omitempty"`
}

// detectResponse reports a classification.
type detectResponse struct {
	Filename string              `json:"filename"`
	Type     domain.DocumentType `json:"type"`
	JSONLD   bool                `json:"jsonLd"`
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload handles POST /api/data/documents.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid multipart body: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "missing "+uploadField+" field")
		return
	}
	defer file.Close()

	if s.validate {
		if err := upload.Validate(header.Filename, header.Header.Get("Content-Type")); err != nil {
			s.handleDomainError(w, err)
			return
		}
	}

	s.ingest(w, r, domain.Input{File: &domain.FileInput{Name: header.Filename, Content: file}})
}

// handleIngestURL handles POST /api/data/documents/url.
func (s *Server) handleIngestURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "url is required")
		return
	}

	s.ingest(w, r, domain.Input{URL: req.URL})
}

func (s *Server) ingest(w http.ResponseWriter, r *http.Request, input domain.Input) {
	result, err := s.ports.Ingest.Ingest(r.Context(), input)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ingestResponse{Document: result.Stored, Processed: result.Processed})
}

// handleList handles GET /api/data/documents.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.ports.Document == nil {
		s.handleDomainError(w, domain.ErrNotImplemented)
		return
	}

	docs, err := s.ports.Document.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// handleGet handles GET /api/data/documents/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.ports.Document == nil {
		s.handleDomainError(w, domain.ErrNotImplemented)
		return
	}

	doc, err := s.ports.Document.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleDelete handles DELETE /api/data/documents/{id}.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.ports.Document == nil {
		s.handleDomainError(w, domain.ErrNotImplemented)
		return
	}

	if err := s.ports.Document.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDetect handles POST /api/detect.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Filename == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "filename is required")
		return
	}

	t := detector.Classify(req.Filename, req.Content)
	writeJSON(w, http.StatusOK, detectResponse{
		Filename: req.Filename,
		Type:     t,
		JSONLD:   t == domain.DocumentTypeJSONLD,
	})
}
