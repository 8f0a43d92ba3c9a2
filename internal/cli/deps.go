package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictdb"
	"github.com/robalobadob/wordscramble/internal/round"
	"github.com/robalobadob/wordscramble/internal/words"
)

// loadWords loads the root word list and lexicon named by cfg.
func loadWords(cfg config.Config) (*words.Source, error) {
	src, err := words.Load(words.Options{
		RootWordsFile:  cfg.RootWordsFile,
		DictionaryFile: cfg.DictionaryFile,
		Locale:         cfg.Locale,
	})
	if err != nil {
		return nil, err
	}
	roots, lexicon := src.Stats()
	log.Info().
		Int("roots", roots).
		Int("lexicon", lexicon).
		Str("locale", src.Lexicon().Locale()).
		Msg("word lists loaded")
	return src, nil
}

// openDictionary returns the dictionary backend selected by cfg and a func
// releasing it. An empty SQLite dictionary is seeded from the lexicon.
func openDictionary(ctx context.Context, cfg config.Config, src *words.Source) (round.Dictionary, func() error, error) {
	switch cfg.DictionaryBackend {
	case config.BackendSQLite:
		db, err := dictdb.Open(ctx, cfg.DictionaryDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open dictionary %s: %w", cfg.DictionaryDSN, err)
		}
		n, err := db.Count(ctx, cfg.Locale)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("count dictionary: %w", err)
		}
		if n == 0 {
			origin := cfg.DictionaryFile
			if origin == "" {
				origin = "embedded"
			}
			seeded, err := db.Seed(ctx, cfg.Locale, origin, src.Lexicon().Words())
			if err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("seed dictionary: %w", err)
			}
			log.Info().Int("words", seeded).Str("dsn", cfg.DictionaryDSN).Msg("dictionary seeded")
		}
		return db, db.Close, nil
	default:
		return src.Lexicon(), func() error { return nil }, nil
	}
}
