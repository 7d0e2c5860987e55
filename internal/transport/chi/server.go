// Package chi exposes the smart search engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/travelcommerce/smartsearch/internal/domain"
	"github.com/travelcommerce/smartsearch/internal/version"
)

// maxRequestBody bounds the request body to keep oversized catalogs from
// exhausting memory. 10 MiB fits several thousand posts.
const maxRequestBody = 10 << 20

// Error codes returned in JSON error bodies.
const (
	codeBadRequest    = "bad_request"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

// Engine is the consumer interface for the search engine.
type Engine interface {
	Search(ctx context.Context, query string, posts []domain.Post) domain.SearchResponse
}

// Server handles the smart search HTTP API.
type Server struct {
	engine Engine
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(engine Engine, logger *zap.Logger) *Server {
	return &Server{engine: engine, logger: logger}
}

// Mount registers the API routes on the router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/v1/search/smart", s.SmartSearch)
	r.Get("/health", s.Health)
}

// smartSearchRequest is the POST /v1/search/smart request body.
type smartSearchRequest struct {
	Query string        `json:"query"`
	Posts []domain.Post `json:"posts"`
}

// SmartSearch handles POST /v1/search/smart.
func (s *Server) SmartSearch(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req smartSearchRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := ensureEOF(body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: trailing data")
		return
	}

	resp := s.engine.Search(r.Context(), req.Query, req.Posts)
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// ensureEOF rejects trailing garbage after the JSON object.
func ensureEOF(r io.Reader) error {
	var buf [1]byte
	n, err := r.Read(buf[:])
	if n > 0 {
		return errors.New("trailing data")
	}
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
