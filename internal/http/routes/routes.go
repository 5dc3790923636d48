// Package routes wires the HTTP surface consumed by the browser
// extension and internal page handlers.
package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/d4lvl13n/Finalboss-FE-sub000/igdb"
)

// defaultSearchLimit applies when the search endpoint gets no limit
// parameter.
const defaultSearchLimit = 10

// GameService is the slice of the metadata client the handlers need.
type GameService interface {
	SearchByText(ctx context.Context, query string, limit int) ([]igdb.GameRecord, error)
	GetByID(ctx context.Context, id int64) (*igdb.GameRecord, error)
}

type Server struct {
	Router      *chi.Mux
	Games       GameService
	SiteBaseURL string
}

type ServerOptions struct {
	Games       GameService
	SiteBaseURL string
	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestID)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Games: opts.Games, SiteBaseURL: strings.TrimRight(opts.SiteBaseURL, "/")}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/extension", func(er chi.Router) {
		er.Use(corsMiddleware)
		er.Get("/game/{id}", s.handleExtensionGame)
		er.Get("/search", s.handleExtensionSearch)
		er.Options("/*", func(w http.ResponseWriter, r *http.Request) {})
	})

	return s
}

// requestID tags every request with an id, echoed in the response
// header and attached to the request-scoped logger.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		if log := zerolog.Ctx(r.Context()); log.GetLevel() != zerolog.Disabled {
			log.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware opens the extension endpoints to any origin; the
// surface is read-only and carries no credentials.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// apiResponse is the envelope every extension endpoint returns.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: false, Error: msg})
}

func (s *Server) handleExtensionGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	rec, err := s.Games.GetByID(r.Context(), id)
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}

	writeData(w, s.extensionPayload(rec))
}

func (s *Server) handleExtensionSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing search query")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	recs, err := s.Games.SearchByText(r.Context(), q, limit)
	if err != nil {
		s.writeGameError(w, r, err)
		return
	}

	writeData(w, recs)
}

// writeGameError maps client errors onto HTTP statuses. Upstream
// failure details are logged, never leaked to the extension surface.
func (s *Server) writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *igdb.NotFoundError
	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, igdb.ErrEmptyQuery), errors.Is(err, igdb.ErrInvalidLimit), errors.Is(err, igdb.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("game lookup failed")
		writeError(w, http.StatusInternalServerError, "failed to load game data")
	}
}
