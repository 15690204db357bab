// Package server exposes search and details over HTTP, with sessions kept
// server side so a client can search once and ask for details many times.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"addressfinder-backend/internal/components/assert"
	"addressfinder-backend/internal/components/telemetry"
	"addressfinder-backend/internal/finder"
	"addressfinder-backend/internal/property"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	report_server_handler = "server.handler"
	report_server_encode  = "server.encode"
)

const suggestionCount = 3

// Finder is implemented by *finder.Finder.
type Finder interface {
	Search(ctx context.Context, raw string) (finder.Session, error)
	Details(ctx context.Context, session finder.Session, address string) (finder.Details, error)
}

type Options struct {
	// SessionCapacity defaults to 1024.
	SessionCapacity int
	// AllowedOrigins defaults to all origins.
	AllowedOrigins []string
}

type Server struct {
	router   chi.Router
	finder   Finder
	sessions *SessionStore
	tel      telemetry.API
}

func New(f Finder, opts Options, tel telemetry.API) (*Server, error) {
	assert.NotNil(f)
	assert.NotNil(tel)

	capacity := opts.SessionCapacity
	if capacity <= 0 {
		capacity = 1024
	}
	sessions, err := NewSessionStore(capacity)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		finder:   f,
		sessions: sessions,
		tel:      telemetry.NewScopedAPI("server", tel),
	}
	s.setupMiddleware(opts.AllowedOrigins)
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware(allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(loggingMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/get_address_data", s.handleGetAddressData)

	s.router.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Post("/{id}/search", s.handleSearch)
		r.Post("/{id}/details", s.handleDetails)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		slog.Info(
			"http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		s.tel.ReportBroken(report_server_encode, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// writeFinderError reports unexpected errors, everything else is the
// client's or the upstream site's problem and only gets a response.
func (s *Server) writeFinderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.tel.ReportBroken(report_server_handler, err, r.Method, r.URL.Path)
	}
	s.writeError(w, status, finder.Describe(err))
}

func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetAddressData answers with every record at a postcode as
// [address, sale date, sale price] triples.
func (s *Server) handleGetAddressData(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("postcode")
	if strings.TrimSpace(raw) == "" {
		s.writeError(w, http.StatusBadRequest, "Postcode not provided")
		return
	}

	session, err := s.finder.Search(r.Context(), raw)
	if err != nil {
		s.writeFinderError(w, r, err)
		return
	}
	if session.Empty() {
		s.writeError(w, http.StatusNotFound, "No addresses found")
		return
	}

	addresses := make([][3]string, len(session.Records))
	for i, row := range newRecordRows(session.Records) {
		addresses[i] = [3]string{row.Address, row.SaleDate, row.SalePrice}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"addresses": addresses})
}

type searchRequest struct {
	Postcode string `json:"postcode"`
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) (finder.Session, bool) {
	var req searchRequest
	err := decodeBody(r, &req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return finder.Session{}, false
	}

	session, err := s.finder.Search(r.Context(), req.Postcode)
	if err != nil {
		s.writeFinderError(w, r, err)
		return finder.Session{}, false
	}
	return session, true
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.search(w, r)
	if !ok {
		return
	}
	id := s.sessions.Create(session)
	s.writeJSON(w, http.StatusCreated, newSessionResponse(id, session))
}

// handleSearch replaces the records of an existing session wholesale. A
// failed search leaves the session as it was.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.sessions.Get(id); !ok {
		s.writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	session, ok := s.search(w, r)
	if !ok {
		return
	}
	if !s.sessions.Replace(id, session) {
		s.writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	s.writeJSON(w, http.StatusOK, newSessionResponse(id, session))
}

type detailsRequest struct {
	Address string `json:"address"`
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, ok := s.sessions.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req detailsRequest
	err := decodeBody(r, &req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	details, err := s.finder.Details(r.Context(), session, req.Address)
	if errors.Is(err, property.ErrNoMatchingRecord) {
		s.writeJSON(w, http.StatusNotFound, errorResponse{
			Error:       finder.Describe(err),
			Suggestions: property.Suggest(session.Records, req.Address, suggestionCount),
		})
		return
	}
	if err != nil {
		s.writeFinderError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newDetailsResponse(details))
}
