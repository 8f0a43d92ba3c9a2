package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictdb"
)

func newWordsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "words",
		Short: "Show how many root words and dictionary words are loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			src, err := loadWords(cfg)
			if err != nil {
				return err
			}
			roots, lexicon := src.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "roots:   %d\nlexicon: %d\n", roots, lexicon)

			if cfg.DictionaryBackend != config.BackendSQLite {
				return nil
			}
			db, err := dictdb.Open(cmd.Context(), cfg.DictionaryDSN)
			if err != nil {
				return err
			}
			defer db.Close()
			n, err := db.Count(cmd.Context(), cfg.Locale)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sqlite:  %d\n", n)
			return nil
		},
	}
}
