// internal/httpserver/routes_round.go
//
// HTTP routes for playing a round.
//   - POST /round/new     → create a session, start a round, issue a ticket
//   - GET  /round         → current snapshot (ticket required)
//   - DELETE /round       → end the round and drop its session (ticket required)
//   - POST /round/restart → new root word on the same session (ticket required)
//   - POST /round/submit  → submit a word (ticket required)
//
// Rejections are ordinary 200 responses carrying the outcome and the alert
// to show; only transport or dictionary problems are HTTP errors.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/i18n"
	"github.com/robalobadob/wordscramble/internal/round"
	"github.com/robalobadob/wordscramble/internal/store"
)

// roundRes is returned by /round/new, /round and /round/restart.
type roundRes struct {
	RoundID string `json:"roundId"`
	Token   string `json:"token,omitempty"`
	round.Snapshot
}

// submitReq is the request payload for /round/submit.
type submitReq struct {
	Word string `json:"word"`
}

// submitRes is the response payload for /round/submit.
type submitRes struct {
	Outcome round.Outcome `json:"outcome"`
	Word    string        `json:"word,omitempty"`
	Points  int           `json:"points"`
	Alert   *i18n.Alert   `json:"alert,omitempty"`
	round.Snapshot
}

// handleNewRound creates a session, starts its first round and returns a
// ticket both in the body and as a cookie.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	st := round.New(s.opts.Dictionary, round.WithLocale(s.opts.Locale))
	root, err := st.StartRound(s.opts.Words.RootWords())
	if err != nil {
		log.Error().Err(err).Msg("start round")
		writeError(w, http.StatusInternalServerError, "no_root_words")
		return
	}

	sess := store.NewSession(st)
	if err := s.opts.Store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	tok, exp, err := s.opts.Tickets.Sign(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign ticket")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	setTicketCookie(w, tok, exp, s.opts.Secure)

	log.Info().Str("round", sess.ID).Str("root", root).Msg("round started")
	writeJSON(w, http.StatusCreated, roundRes{RoundID: sess.ID, Token: tok, Snapshot: st.Snapshot()})
}

// handleGetRound returns the current snapshot.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var snap round.Snapshot
	_ = sess.Do(func(st *round.State) error {
		snap = st.Snapshot()
		return nil
	})
	writeJSON(w, http.StatusOK, roundRes{RoundID: sess.ID, Snapshot: snap})
}

// handleEndRound drops the session and clears the ticket cookie.
func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.opts.Store.Delete(r.Context(), sess.ID); err != nil {
		log.Error().Err(err).Str("round", sess.ID).Msg("delete session")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	clearTicketCookie(w, s.opts.Secure)

	log.Info().Str("round", sess.ID).Msg("round ended")
	w.WriteHeader(http.StatusNoContent)
}

// handleRestart picks a new root word for the session ("New word").
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	var (
		root string
		snap round.Snapshot
	)
	err := sess.Do(func(st *round.State) error {
		var err error
		if root, err = st.StartRound(s.opts.Words.RootWords()); err != nil {
			return err
		}
		snap = st.Snapshot()
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("round", sess.ID).Msg("restart round")
		writeError(w, http.StatusInternalServerError, "no_root_words")
		return
	}

	log.Info().Str("round", sess.ID).Str("root", root).Msg("round restarted")
	writeJSON(w, http.StatusOK, roundRes{RoundID: sess.ID, Snapshot: snap})
}

// handleSubmit runs one submission and reports the outcome.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	sess := sessionFrom(r.Context())
	var (
		res  round.Result
		snap round.Snapshot
	)
	err := sess.Do(func(st *round.State) error {
		var err error
		if res, err = st.Submit(r.Context(), req.Word); err != nil {
			return err
		}
		snap = st.Snapshot()
		return nil
	})
	switch {
	case errors.Is(err, round.ErrNoRound):
		writeError(w, http.StatusConflict, "no_round")
		return
	case err != nil:
		log.Warn().Err(err).Str("round", sess.ID).Msg("submit")
		writeError(w, http.StatusBadGateway, "dictionary_unavailable")
		return
	}

	log.Debug().
		Str("round", sess.ID).
		Str("word", res.Word).
		Str("outcome", string(res.Outcome)).
		Int("score", res.Score).
		Msg("submission")

	out := submitRes{Outcome: res.Outcome, Word: res.Word, Points: res.Points, Snapshot: snap}
	if alert, ok := i18n.AlertFor(i18n.Printer(i18n.Default()), res.Outcome); ok {
		out.Alert = &alert
	}
	writeJSON(w, http.StatusOK, out)
}
