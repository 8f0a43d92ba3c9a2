// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /round/new issues a ticket; GET /round,
//     DELETE /round, POST /round/restart and POST /round/submit require one.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the ticket cookie works).
//   - Tickets are accepted from "Authorization: Bearer" or the ticket cookie.
//   - Every round operation goes through store.Session.Do, so a round never
//     sees two submissions at once.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/round"
	"github.com/robalobadob/wordscramble/internal/store"
)

// WordSource supplies root words for new rounds.
type WordSource interface {
	RootWords() []string
	Stats() (roots int, lexicon int)
}

// Options bundles the server's collaborators.
type Options struct {
	Store        store.Store
	Words        WordSource
	Dictionary   round.Dictionary
	Tickets      *Tickets
	Locale       string
	ClientOrigin string // CORS origin; http://localhost:5173 if empty
	Secure       bool   // secure cookies (production)
}

// Server bundles router, session store and round collaborators.
type Server struct {
	r    *chi.Mux
	opts Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog request line
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble","endpoints":["/health","POST /round/new","GET /round","POST /round/restart","POST /round/submit"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		roots, lexicon := s.opts.Words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"roots": roots, "lexicon": lexicon})
	})

	// --- rounds ---
	s.r.Post("/round/new", s.handleNewRound)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireTicket)
		r.Get("/round", s.handleGetRound)
		r.Delete("/round", s.handleEndRound)
		r.Post("/round/restart", s.handleRestart)
		r.Post("/round/submit", s.handleSubmit)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (used by the CLI and tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one debug line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

// ctxSessionKey is the context key type for the ticket's session.
type ctxSessionKey struct{}

// requireTicket verifies the round ticket and injects its session into the
// request context. Bad tickets are 401, unknown rounds 404.
func (s *Server) requireTicket(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "missing_ticket")
			return
		}
		id, err := s.opts.Tickets.Verify(tok)
		if err != nil {
			log.Debug().Err(err).Msg("reject ticket")
			writeError(w, http.StatusUnauthorized, "invalid_ticket")
			return
		}
		sess, err := s.opts.Store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "round_not_found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session placed by requireTicket.
func sessionFrom(ctx context.Context) *store.Session {
	sess, _ := ctx.Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// ------------------------------- helpers -----------------------------------

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// writeJSON writes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
