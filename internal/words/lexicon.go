package words

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedLocale is returned for lookups in a language the lexicon
// was not built for.
var ErrUnsupportedLocale = errors.New("words: unsupported locale")

// Lexicon is an in-memory set of known words for one language.
// It is read-only after construction and safe for concurrent use.
type Lexicon struct {
	base  language.Base
	words map[string]struct{}
}

// NewLexicon builds a lexicon for locale from list (entries are lowercased
// and NFC-normalized).
func NewLexicon(locale string, list []string) *Lexicon {
	base, _ := language.Make(locale).Base()
	return &Lexicon{base: base, words: toSet(list)}
}

// toSet converts a list of strings into a lookup set of folded entries.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[fold(w)] = struct{}{}
	}
	return m
}

// fold maps a word to the form the lexicon stores: trimmed, lowercase, NFC.
func fold(w string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(w)))
}

// IsValidWord reports whether word is in the lexicon.
// Any region or script of the lexicon's language is accepted ("en-GB" for an
// "en" lexicon); a different language yields ErrUnsupportedLocale.
func (l *Lexicon) IsValidWord(_ context.Context, word, locale string) (bool, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	if base, _ := tag.Base(); base != l.base {
		return false, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	_, ok := l.words[fold(word)]
	return ok, nil
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int { return len(l.words) }

// Locale returns the language the lexicon was built for.
func (l *Lexicon) Locale() string { return l.base.String() }

// Words returns the lexicon sorted alphabetically.
func (l *Lexicon) Words() []string {
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
