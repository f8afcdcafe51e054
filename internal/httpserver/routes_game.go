// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - POST /game/new            → deal a game ("random" or "daily" layout)
//   - GET  /game/{id}           → current board
//   - POST /game/{id}/select    → flip a card by unique id
//   - POST /game/{id}/restart   → new deck, same game id
//
// Responses carry the event the call produced ("" when nothing changed), the
// board, and once won the result summary.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codememory/internal/session"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Post("/select", s.handleSelect)
		r.Post("/restart", s.handleRestart)
	})
}

type newGameReq struct {
	Mode string `json:"mode"` // "random" (default) | "daily"
}

type newGameRes struct {
	GameID string `json:"gameId"`
	session.Update
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	var deal session.DealFunc
	switch req.Mode {
	case "", session.ModeRandom:
		deal = session.RandomDeal(s.langs)
	case session.ModeDaily:
		deal = session.DailyDeal(s.langs, s.cfg.DailySalt, s.now)
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	player := playerID(r.Context())
	run := s.games.Start(player, deal)
	log.Info().Str("game", run.ID()).Str("player", player).Str("mode", req.Mode).Msg("game started")
	writeJSON(w, http.StatusOK, newGameRes{GameID: run.ID(), Update: run.State()})
}

// runnerFor resolves {id} for the current player, answering 404 when it cannot.
func (s *Server) runnerFor(w http.ResponseWriter, r *http.Request) (*session.Runner, bool) {
	run, err := s.games.Get(playerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			log.Error().Err(err).Msg("lookup game")
		}
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return run, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	run, ok := s.runnerFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run.State())
}

type selectReq struct {
	UniqueID *int `json:"uniqueId"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	run, ok := s.runnerFor(w, r)
	if !ok {
		return
	}
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UniqueID == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	writeJSON(w, http.StatusOK, run.Select(*req.UniqueID))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	run, ok := s.runnerFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run.Restart())
}
