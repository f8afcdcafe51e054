// internal/httpserver/server.go
//
// HTTP server wiring for the Code Memory backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/catalog".
//   - Game endpoints: /game/new, /game/{id}, /game/{id}/select, /game/{id}/restart.
//   - Live updates: /game/{id}/events (WebSocket).
//   - Records endpoints: /records, /records/reset.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Every game and records route runs behind withPlayer, which guarantees a
//     player id in the request context (see identity.go).
//   - The events route is mounted outside the timeout group; a socket outlives any
//     request deadline.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codememory/internal/catalog"
	"github.com/robalobadob/codememory/internal/config"
	"github.com/robalobadob/codememory/internal/session"
)

// requestTimeout bounds every non-streaming handler.
const requestTimeout = 10 * time.Second

// Server bundles the router, the running games and the settings it was built with.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	games    *session.Manager
	langs    []catalog.Language
	upgrader websocket.Upgrader
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, games *session.Manager, langs []catalog.Language) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		games: games,
		langs: langs,
		now:   time.Now,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"codememory","endpoints":["/health","/catalog","POST /game/new","/game/{id}","/records"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/catalog", s.handleCatalog)

		r.Group(func(r chi.Router) {
			r.Use(s.withPlayer)
			s.mountGame(r)
			s.mountRecords(r)
		})
	})

	s.r.With(s.withPlayer).Get("/game/{id}/events", s.handleEvents)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

type catalogRes struct {
	Languages []catalog.Language `json:"languages"`
	DeckSize  int                `json:"deckSize"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogRes{Languages: s.langs, DeckSize: 2 * len(s.langs)})
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request, tagged with chi's request id.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("req_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError sends {"error":code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
