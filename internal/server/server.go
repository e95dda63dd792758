// Package server exposes the analyzer over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/0xlemi/phinote/internal/analysis"
	"github.com/0xlemi/phinote/internal/audio"
	"github.com/0xlemi/phinote/internal/config"
	"github.com/0xlemi/phinote/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

const shutdownTimeout = 5 * time.Second

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"detail"`
}

// Server accepts audio uploads and replies with the transcribed notes.
type Server struct {
	analyzer  *analysis.Analyzer
	log       logging.Logger
	addr      string
	maxUpload int64
	handler   http.Handler
}

// New creates a server for cfg backed by analyzer.
func New(cfg config.Config, analyzer *analysis.Analyzer, log logging.Logger) *Server {
	s := &Server{
		analyzer:  analyzer,
		log:       log,
		addr:      cfg.Addr,
		maxUpload: cfg.MaxUploadBytes,
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/wav_data", s.handleWavData).Methods(http.MethodPost)
	router.Use(s.requestID)

	s.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler(router)

	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", logging.Fields{"addr": s.addr})
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.WithStack(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

type ctxKey struct{}

// requestID tags the request and the response with a fresh id.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Server) logger(r *http.Request) logging.Logger {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return s.log.WithFields(logging.Fields{"request_id": id, "path": r.URL.Path})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusTeapot, "Hello, world!")
}

func (s *Server) handleWavData(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxUpload))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds %d bytes", s.maxUpload)
			return
		}
		log.Error(err, "read body")
		s.writeError(w, http.StatusBadRequest, "could not read body")
		return
	}
	if len(body) == 0 {
		s.writeError(w, http.StatusBadRequest, "empty buffer")
		return
	}

	format := s.analyzer.Format()
	raw := body
	if audio.IsWAV(body) {
		format, raw, err = audio.ReadWAV(bytes.NewReader(body))
		if err != nil {
			log.Warn("rejected WAV upload", logging.Fields{"error": err.Error()})
			s.writeError(w, http.StatusBadRequest, "%v", err)
			return
		}
	}

	chunk, err := s.analyzer.AnalyzeFormat(r.Context(), raw, format)
	switch {
	case errors.Is(err, audio.ErrDecode), errors.Is(err, audio.ErrUnsupportedFormat):
		log.Warn("rejected upload", logging.Fields{"bytes": len(body), "error": err.Error()})
		s.writeError(w, http.StatusBadRequest, "%v", err)
		return
	case err != nil:
		log.Error(err, "analysis failed")
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	log.Info("analyzed upload", logging.Fields{
		"bytes":    len(body),
		"notes":    len(chunk.Notes),
		"duration": chunk.Duration(),
	})
	s.writeJSON(w, http.StatusOK, chunk)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error(err, "write response", logging.Fields{"status": status})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, format string, args ...any) {
	s.writeJSON(w, status, ErrorResponse{Error: fmt.Sprintf(format, args...)})
}
