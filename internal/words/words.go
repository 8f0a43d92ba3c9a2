// internal/words/words.go
//
// Provides word list management for the round engine.
//
// Responsibilities:
//   - Load the root word list and the bundled lexicon from files named in
//     configuration, or fall back to the embedded defaults in assets/.
//   - Expose the root words (for round.State.StartRound) and a Lexicon
//     (a round.Dictionary) built from the lexicon ∪ root words.
//
// Word Lists:
//   - "roots":   candidate root words, one per line (start.txt).
//   - "lexicon": every word the in-memory dictionary accepts (dictionary.txt).
//
// Loading behavior (Load):
//   1. If Options.RootWordsFile is set, roots come from that file,
//      otherwise from the embedded start.txt.
//   2. If Options.DictionaryFile is set, the lexicon comes from that file,
//      otherwise from the embedded dictionary.txt.
//   3. Root words are always part of the lexicon.
//
// Constraints:
//   • Lines are trimmed and lowercased; blank lines and "#" comments skipped.
//   • Entries containing anything but letters are dropped.
//   • An empty root list is an error wrapping round.ErrEmptyWordList.

package words

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/round"
)

// Options selects where the word lists come from.
type Options struct {
	RootWordsFile  string // newline-separated root words; embedded start.txt if empty
	DictionaryFile string // newline-separated lexicon; embedded dictionary.txt if empty
	Locale         string // language of the lexicon; round.DefaultLocale if empty
}

// Source holds the loaded lists.
type Source struct {
	roots   []string
	lexicon *Lexicon
}

// Load reads both lists according to opts.
func Load(opts Options) (*Source, error) {
	roots, err := loadList(opts.RootWordsFile, assets.RootWords)
	if err != nil {
		return nil, fmt.Errorf("words: load roots: %w", err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("words: roots list %s: %w", origin(opts.RootWordsFile), round.ErrEmptyWordList)
	}

	lex, err := loadList(opts.DictionaryFile, assets.DictionaryWords)
	if err != nil {
		return nil, fmt.Errorf("words: load dictionary: %w", err)
	}

	locale := opts.Locale
	if locale == "" {
		locale = round.DefaultLocale
	}
	return &Source{
		roots:   roots,
		lexicon: NewLexicon(locale, append(lex, roots...)),
	}, nil
}

// loadList reads path when set, otherwise calls fallback.
func loadList(path string, fallback func() ([]string, error)) ([]string, error) {
	var (
		list []string
		err  error
	)
	if path != "" {
		list, err = readWordFile(path)
	} else {
		list, err = fallback()
	}
	if err != nil {
		return nil, err
	}
	return keepWords(list), nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := fold(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// keepWords drops entries that are not purely letters.
func keepWords(list []string) []string {
	out := list[:0]
	for _, w := range list {
		if isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is non-empty and made of letters only.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func origin(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}

// RootWords returns a copy of the root word list.
func (s *Source) RootWords() []string { return slices.Clone(s.roots) }

// Lexicon returns the in-memory dictionary.
func (s *Source) Lexicon() *Lexicon { return s.lexicon }

// Stats returns counts of loaded words: (roots, lexicon).
func (s *Source) Stats() (rootsCount int, lexiconCount int) {
	return len(s.roots), s.lexicon.Len()
}
