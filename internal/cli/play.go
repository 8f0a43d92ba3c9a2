package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/robalobadob/wordscramble/internal/i18n"
	"github.com/robalobadob/wordscramble/internal/round"
)

// Commands understood by the play prompt.
const (
	cmdNewWord = ":new"
	cmdQuit    = ":quit"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		Long: "Play a round in the terminal. Type a word and press enter.\n" +
			"Blank lines are ignored, " + cmdNewWord + " picks a new root word and " + cmdQuit + " exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg

			src, err := loadWords(cfg)
			if err != nil {
				return err
			}
			dict, closeDict, err := openDictionary(cmd.Context(), cfg, src)
			if err != nil {
				return err
			}
			defer func() { _ = closeDict() }()

			st := round.New(dict, round.WithLocale(cfg.Locale))
			return play(cmd.Context(), st, src.RootWords(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// play runs an interactive round reading words from in until EOF or :quit.
func play(ctx context.Context, st *round.State, roots []string, in io.Reader, out io.Writer) error {
	p := i18n.Printer(i18n.Default())

	if err := startRound(st, roots, out); err != nil {
		return err
	}
	fmt.Fprintf(out, "(%s: %s)\n", p.Sprintf(i18n.NewWordKey), cmdNewWord)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s> ", p.Sprintf(i18n.PromptKey))
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := sc.Text()

		switch strings.TrimSpace(line) {
		case cmdQuit:
			return nil
		case cmdNewWord:
			if err := startRound(st, roots, out); err != nil {
				return err
			}
			continue
		}

		res, err := st.Submit(ctx, line)
		if err != nil {
			log.Warn().Err(err).Msg("submit")
			fmt.Fprintf(out, "! %v\n", err)
			continue
		}

		switch res.Outcome {
		case round.OutcomeIgnored:
		case round.OutcomeAccepted:
			renderRound(out, p, st)
		default:
			alert, _ := i18n.AlertFor(p, res.Outcome)
			fmt.Fprintf(out, "%s: %s\n", alert.Title, alert.Message)
		}
	}
}

// startRound begins a new round and prints its root word.
func startRound(st *round.State, roots []string, out io.Writer) error {
	root, err := st.StartRound(roots)
	if err != nil {
		return err
	}
	log.Debug().Str("root", root).Msg("round started")
	fmt.Fprintf(out, "\n== %s ==\n", strings.ToUpper(root))
	return nil
}

// renderRound prints the used words, most recent first, and the score.
func renderRound(out io.Writer, p *message.Printer, st *round.State) {
	for _, w := range st.UsedWords() {
		fmt.Fprintf(out, "  (%d) %s\n", utf8.RuneCountInString(w), w)
	}
	fmt.Fprintln(out, i18n.ScoreLabel(p, st.Score()))
}
