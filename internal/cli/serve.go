package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve rounds over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			src, err := loadWords(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			dict, closeDict, err := openDictionary(ctx, cfg, src)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeDict(); err != nil {
					log.Warn().Err(err).Msg("close dictionary")
				}
			}()

			sessions := store.NewMemoryStore()
			srv := httpserver.New(httpserver.Options{
				Store:        sessions,
				Words:        src,
				Dictionary:   dict,
				Tickets:      httpserver.NewTickets(cfg.TicketSecret, cfg.TicketTTL),
				Locale:       cfg.Locale,
				ClientOrigin: cfg.ClientOrigin,
				Secure:       cfg.Production,
			})

			go sweepSessions(ctx, sessions, cfg.SessionIdleTTL)

			hs := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- hs.ListenAndServe() }()
			log.Info().Str("port", cfg.Port).Str("dictionary", cfg.DictionaryBackend).Msg("starting wordscramble server")

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		},
	}
}

// sweepSessions drops idle sessions until ctx is done.
func sweepSessions(ctx context.Context, st store.Store, idle time.Duration) {
	interval := idle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(ctx, idle); n > 0 {
				log.Info().Int("sessions", n).Int("live", st.Len()).Msg("swept idle rounds")
			}
		}
	}
}
