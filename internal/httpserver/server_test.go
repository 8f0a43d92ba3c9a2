package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/round"
	"github.com/robalobadob/wordscramble/internal/store"
)

type fixedWords []string

func (f fixedWords) RootWords() []string { return append([]string(nil), f...) }
func (f fixedWords) Stats() (int, int)   { return len(f), 42 }

func knownWords(words ...string) round.Dictionary {
	return round.DictionaryFunc(func(ctx context.Context, word, locale string) (bool, error) {
		for _, w := range words {
			if w == word {
				return true, nil
			}
		}
		return false, nil
	})
}

func newTestServer(t *testing.T, roots fixedWords, dict round.Dictionary) (*Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	s := New(Options{
		Store:      st,
		Words:      roots,
		Dictionary: dict,
		Tickets:    NewTickets("test-secret", time.Hour),
		Locale:     "en",
	})
	return s, st
}

func do(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func newRound(t *testing.T, s *Server) roundRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/round/new", "", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[roundRes](t, rec)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords())
	rec := do(t, s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/debug/words", "", "")
	assert.JSONEq(t, `{"roots":1,"lexicon":42}`, rec.Body.String())
}

func TestNewRound(t *testing.T) {
	s, st := newTestServer(t, fixedWords{"listen"}, knownWords())

	rec := do(t, s, http.MethodPost, "/round/new", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	res := decode[roundRes](t, rec)
	assert.NotEmpty(t, res.RoundID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, round.Snapshot{RootWord: "listen", UsedWords: []string{}, Score: 0}, res.Snapshot)
	assert.Equal(t, 1, st.Len())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ticketCookieName, cookies[0].Name)
	assert.Equal(t, res.Token, cookies[0].Value)
}

func TestNewRound_NoRootWords(t *testing.T) {
	s, st := newTestServer(t, fixedWords{"", " "}, knownWords())

	rec := do(t, s, http.MethodPost, "/round/new", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"no_root_words"}`, rec.Body.String())
	assert.Zero(t, st.Len())
}

func TestSubmit_Flow(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords("silent", "tin"))
	rr := newRound(t, s)

	rec := do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":" Silent "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[submitRes](t, rec)
	assert.Equal(t, round.OutcomeAccepted, res.Outcome)
	assert.Equal(t, "silent", res.Word)
	assert.Equal(t, 12, res.Points)
	assert.Nil(t, res.Alert)
	assert.Equal(t, round.Snapshot{RootWord: "listen", UsedWords: []string{"silent"}, Score: 12}, res.Snapshot)

	rec = do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":"silent"}`)
	res = decode[submitRes](t, rec)
	assert.Equal(t, round.OutcomeDuplicate, res.Outcome)
	require.NotNil(t, res.Alert)
	assert.Equal(t, "Word used already", res.Alert.Title)
	assert.Equal(t, "Be more original", res.Alert.Message)
	assert.Equal(t, 12, res.Score)

	rec = do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":"lists"}`)
	res = decode[submitRes](t, rec)
	assert.Equal(t, round.OutcomeNotComposable, res.Outcome)
	assert.Equal(t, "Word not recognized", res.Alert.Title)

	rec = do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":"net"}`)
	res = decode[submitRes](t, rec)
	assert.Equal(t, round.OutcomeNotReal, res.Outcome)
	assert.Equal(t, "This is not a real word", res.Alert.Message)

	rec = do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":"  "}`)
	res = decode[submitRes](t, rec)
	assert.Equal(t, round.OutcomeIgnored, res.Outcome)
	assert.Nil(t, res.Alert)

	rec = do(t, s, http.MethodGet, "/round", rr.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[roundRes](t, rec)
	assert.Equal(t, rr.RoundID, got.RoundID)
	assert.Empty(t, got.Token)
	assert.Equal(t, round.Snapshot{RootWord: "listen", UsedWords: []string{"silent"}, Score: 12}, got.Snapshot)
}

func TestSubmit_TicketFromCookie(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords("tin"))
	rr := newRound(t, s)

	req := httptest.NewRequest(http.MethodPost, "/round/submit", strings.NewReader(`{"word":"tin"}`))
	req.AddCookie(&http.Cookie{Name: ticketCookieName, Value: rr.Token})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, round.OutcomeAccepted, decode[submitRes](t, rec).Outcome)
}

func TestSubmit_TicketsAreScopedToTheirRound(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords("tin"))
	a := newRound(t, s)
	b := newRound(t, s)
	require.NotEqual(t, a.RoundID, b.RoundID)

	rec := do(t, s, http.MethodPost, "/round/submit", a.Token, `{"word":"tin"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/round", b.Token, "")
	assert.Empty(t, decode[roundRes](t, rec).UsedWords)
}

func TestSubmit_TicketErrors(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords())
	other := NewTickets("another-secret", time.Hour)
	forged, _, err := other.Sign("whatever")
	require.NoError(t, err)
	orphan, _, err := s.opts.Tickets.Sign("no-such-round")
	require.NoError(t, err)

	cases := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"missing", "", http.StatusUnauthorized, "missing_ticket"},
		{"garbage", "not-a-jwt", http.StatusUnauthorized, "invalid_ticket"},
		{"wrong secret", forged, http.StatusUnauthorized, "invalid_ticket"},
		{"unknown round", orphan, http.StatusNotFound, "round_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/round/submit", tc.token, `{"word":"tin"}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.code+`"}`, rec.Body.String())
		})
	}
}

func TestSubmit_BadJSON(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords())
	rr := newRound(t, s)

	rec := do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_DictionaryFailure(t *testing.T) {
	dict := round.DictionaryFunc(func(ctx context.Context, word, locale string) (bool, error) {
		return false, errors.New("offline")
	})
	s, _ := newTestServer(t, fixedWords{"listen"}, dict)
	rr := newRound(t, s)

	rec := do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":"tin"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = do(t, s, http.MethodGet, "/round", rr.Token, "")
	assert.Zero(t, decode[roundRes](t, rec).Score)
}

func TestRestart(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords("tin"))
	rr := newRound(t, s)
	do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":"tin"}`)

	rec := do(t, s, http.MethodPost, "/round/restart", rr.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[roundRes](t, rec)
	assert.Equal(t, rr.RoundID, got.RoundID)
	assert.Equal(t, round.Snapshot{RootWord: "listen", UsedWords: []string{}, Score: 0}, got.Snapshot)

	// "tin" is original again in the new round.
	rec = do(t, s, http.MethodPost, "/round/submit", rr.Token, `{"word":"tin"}`)
	assert.Equal(t, round.OutcomeAccepted, decode[submitRes](t, rec).Outcome)
}

func TestEndRound(t *testing.T) {
	s, st := newTestServer(t, fixedWords{"listen"}, knownWords())
	rr := newRound(t, s)
	require.Equal(t, 1, st.Len())

	rec := do(t, s, http.MethodDelete, "/round", rr.Token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, st.Len())
	cookie := rec.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.Equal(t, ticketCookieName, cookie[0].Name)
	assert.Empty(t, cookie[0].Value)

	rec = do(t, s, http.MethodGet, "/round", rr.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords())
	rec := do(t, s, http.MethodOptions, "/round/submit", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t, fixedWords{"listen"}, knownWords())
	rec := do(t, s, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}
