// internal/httpserver/routes_records.go
//
// Records endpoints for the current player:
//   - GET  /records        → high score, best time, max combo
//   - POST /records/reset  → back to defaults

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codememory/internal/records"
)

func (s *Server) mountRecords(r chi.Router) {
	r.Route("/records", func(r chi.Router) {
		r.Get("/", s.handleRecords)
		r.Post("/reset", s.handleResetRecords)
	})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	player := playerID(r.Context())
	rec, err := s.games.Records().Load(r.Context(), player)
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("load records")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, records.BuildView(rec))
}

func (s *Server) handleResetRecords(w http.ResponseWriter, r *http.Request) {
	player := playerID(r.Context())
	if err := s.games.Records().Reset(r.Context(), player); err != nil {
		log.Error().Err(err).Str("player", player).Msg("reset records")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	log.Info().Str("player", player).Msg("records reset")
	writeJSON(w, http.StatusOK, records.BuildView(records.Default()))
}
