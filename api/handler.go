// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poiesic/chatdocs/auth"
	"github.com/poiesic/chatdocs/core"
	"github.com/poiesic/chatdocs/ingestion"
	"github.com/poiesic/chatdocs/search"
	"github.com/poiesic/chatdocs/storage"
)

// Handler serves the document ingestion and retrieval endpoints.
type Handler struct {
	ingestor  Ingestor
	retriever Retriever
	uploads   storage.UploadRepository
	logger    *slog.Logger
}

// NewHandler creates an HTTP handler over the given collaborators.
func NewHandler(ingestor Ingestor, retriever Retriever, uploads storage.UploadRepository, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		ingestor:  ingestor,
		retriever: retriever,
		uploads:   uploads,
		logger:    logger.With("component", "api"),
	}
}

type uploadResponse struct {
	FileName string `json:"fileName"`
}

type searchRequest struct {
	Query   string `json:"query"`
	MaxHits int    `json:"maxHits"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// UploadDocument handles POST /api/documents. The request is a
// multipart form with a "file" part and an "id" field naming the
// conversation.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(core.MaxUploadSize); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid form data or file too large", err)
		return
	}

	conversationId := r.FormValue("id")

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "file is required", err)
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(io.LimitReader(file, core.MaxUploadSize))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "failed to read file", err)
		return
	}

	req := &core.UploadRequest{
		FileName:       header.Filename,
		ContentType:    header.Header.Get("Content-Type"),
		Size:           header.Size,
		Contents:       contents,
		ConversationId: conversationId,
	}

	fileName, err := h.ingestor.Ingest(r.Context(), req)
	if err != nil {
		h.respondIngestError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, uploadResponse{FileName: fileName})
}

// ListDocuments handles GET /api/conversations/{conversationId}/documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	conversationId := chi.URLParam(r, "conversationId")

	records, err := h.uploads.ListUploads(r.Context(), conversationId)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, "failed to list documents", err)
		return
	}
	if records == nil {
		records = []*core.UploadRecord{}
	}

	h.respondJSON(w, http.StatusOK, records)
}

// SearchDocuments handles POST /api/conversations/{conversationId}/search.
func (h *Handler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	conversationId := chi.URLParam(r, "conversationId")

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	matches, err := h.retriever.FindSimilar(r.Context(), conversationId, req.Query, req.MaxHits)
	if err != nil {
		h.respondSearchError(w, r, err)
		return
	}
	if matches == nil {
		matches = []*core.ChunkMatch{}
	}

	h.respondJSON(w, http.StatusOK, matches)
}

// DeleteDocument handles DELETE /api/documents/{id}. The upload record
// is soft-deleted; indexed chunks are left in place.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.uploads.SoftDeleteUpload(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respondError(w, r, http.StatusNotFound, "document not found", err)
			return
		}
		h.respondError(w, r, http.StatusInternalServerError, "failed to delete document", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondIngestError maps pipeline failures onto HTTP statuses. Client
// mistakes are 4xx; upstream service failures surface as 502.
func (h *Handler) respondIngestError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidUpload),
		errors.Is(err, ingestion.ErrUnsupportedFormat):
		h.respondError(w, r, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, ingestion.ErrEmptyExtraction):
		h.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, ingestion.ErrExtractionService),
		errors.Is(err, ingestion.ErrIndexing):
		h.respondError(w, r, http.StatusBadGateway, err.Error(), err)
	case errors.Is(err, auth.ErrNoPrincipal):
		h.respondError(w, r, http.StatusUnauthorized, err.Error(), err)
	default:
		h.respondError(w, r, http.StatusInternalServerError, "ingestion failed", err)
	}
}

func (h *Handler) respondSearchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, search.ErrMissingConversation):
		h.respondError(w, r, http.StatusBadRequest, err.Error(), err)
	default:
		h.respondError(w, r, http.StatusBadGateway, "search failed", err)
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	h.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"err", err)
	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}
