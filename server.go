package main

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

//go:embed frontend
var frontendFS embed.FS

// Server is the main HTTP server.
type Server struct {
	router     chi.Router
	cfg        Config
	logger     *log.Logger
	generator  *Generator
	suggester  WordSuggester
	generateRL *rateLimiter
	suggestRL  *rateLimiter
}

// NewServer creates a configured HTTP server. suggester may be nil, in which
// case POST /suggest answers 503.
func NewServer(cfg Config, logger *log.Logger, suggester WordSuggester) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		cfg:        cfg,
		logger:     logger,
		generator:  NewGenerator(cfg.Grid),
		suggester:  suggester,
		generateRL: newRateLimiter(cfg.Limits.GeneratePerMinute, time.Minute),
		suggestRL:  newRateLimiter(cfg.Limits.SuggestPerMinute, time.Minute),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}),
		requestLogger(s.logger),
		middleware.Recoverer,
		securityHeaders,
	)

	s.router.Post("/generate", s.handleGenerate)
	s.router.Post("/suggest", s.handleSuggest)
	s.router.Get("/healthz", s.handleHealth)

	// Frontend static files
	frontendDir, _ := fs.Sub(frontendFS, "frontend")
	s.router.Handle("/*", http.FileServer(http.FS(frontendDir)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close stops the rate limiters' background cleanup.
func (s *Server) Close() {
	s.generateRL.close()
	s.suggestRL.close()
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// POST /generate — place words on a fresh grid.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.generateRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	var req GenerateRequest
	if status, err := s.decode(w, r, &req); err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	resp, err := s.generator.Generate(req)
	if err != nil {
		if errors.Is(err, ErrInsufficientCapacity) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		loggerFromContext(r.Context()).Error("generate failed", "err", err)
		jsonError(w, "generation failed", http.StatusInternalServerError)
		return
	}

	loggerFromContext(r.Context()).Debug("generated grid",
		"seed", resp.Seed,
		"placed", len(resp.PlacedWords),
		"dropped", len(resp.DroppedWords),
	)
	writeJSON(w, http.StatusOK, resp)
}

// POST /suggest — themed word list from Gemini.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if !s.suggestRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	if s.suggester == nil {
		jsonError(w, "word suggestions are not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Theme string `json:"theme"`
		Count int    `json:"count"`
	}
	if status, err := s.decode(w, r, &req); err != nil {
		jsonError(w, err.Error(), status)
		return
	}
	theme := strings.TrimSpace(req.Theme)
	if theme == "" {
		jsonError(w, "field 'theme' is required", http.StatusBadRequest)
		return
	}
	count := req.Count
	if count <= 0 {
		count = defaultSuggestCount
	}
	count = min(count, maxSuggestCount)

	words, err := s.suggester.SuggestWords(r.Context(), theme, count, s.cfg.Grid.Size)
	if err != nil {
		loggerFromContext(r.Context()).Error("suggest failed", "theme", theme, "err", err)
		jsonError(w, "word suggestion failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"words": words})
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// --- Helpers ---

// decode reads a JSON object body into dst. Absent fields keep their zero
// value; wrongly typed fields are a client error.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		if dec.More() || dec.Decode(&struct{}{}) != io.EOF {
			return http.StatusBadRequest, errors.New("request body must hold a single JSON object")
		}
		return http.StatusOK, nil
	}

	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
	case errors.Is(err, io.EOF):
		return http.StatusBadRequest, errors.New("request body is empty")
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return http.StatusBadRequest, fmt.Errorf("field '%s' has the wrong type", typeErr.Field)
		}
		return http.StatusBadRequest, errors.New("request body must be a JSON object")
	default:
		return http.StatusBadRequest, errors.New("invalid JSON body")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
