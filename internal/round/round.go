// internal/round/round.go
//
// Round engine for a single Word Scramble round.
// Responsibilities:
//   - Start rounds from a candidate root word list (uniform random pick).
//   - Validate and apply submissions (originality, composability, realness).
//   - Keep the running list of accepted words and the score.
//
// Notes:
//   - A State is not safe for concurrent use. Callers that share one
//     (e.g. the HTTP session store) serialize access themselves.
//   - Realness is delegated to a Dictionary; this package never loads words.
package round

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultLocale is used when no locale option is given.
	DefaultLocale = "en"
	// MinWordLength is the shortest word the realness check accepts.
	MinWordLength = 3
	// PointsPerLetter is awarded for every letter of an accepted word.
	PointsPerLetter = 2
)

// Picker returns an index in [0, n). n is always positive.
type Picker func(n int) int

// Option configures a State.
type Option func(*State)

// WithLocale sets the locale passed to the dictionary and used for case folding.
func WithLocale(locale string) Option {
	return func(s *State) {
		if locale != "" {
			s.locale = locale
		}
	}
}

// WithPicker replaces the crypto-random root word picker.
func WithPicker(p Picker) Option {
	return func(s *State) {
		if p != nil {
			s.pick = p
		}
	}
}

// State is the mutable state of one player's round.
type State struct {
	dict   Dictionary
	locale string
	fold   cases.Caser
	pick   Picker

	started   bool
	rootWord  string
	usedWords []string // most recent first
	score     int
}

// New returns an idle State. StartRound must be called before Submit.
func New(dict Dictionary, opts ...Option) *State {
	s := &State{
		dict:   dict,
		locale: DefaultLocale,
		pick:   cryptoPick,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.fold = cases.Lower(language.Make(s.locale))
	return s
}

// StartRound picks a new root word from wordList and resets the round.
// Blank entries are never picked. If nothing is left to pick from, a
// *ConfigurationError wrapping ErrEmptyWordList is returned and the
// current state is kept as is.
func (s *State) StartRound(wordList []string) (string, error) {
	eligible := make([]int, 0, len(wordList))
	for i, w := range wordList {
		if strings.TrimSpace(w) != "" {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return "", &ConfigurationError{Err: ErrEmptyWordList}
	}

	root := s.normalize(wordList[eligible[s.pick(len(eligible))]])

	s.rootWord, s.usedWords, s.score, s.started = root, []string{}, 0, true
	return root, nil
}

// Submit validates candidate against the round and commits it when valid.
//
// Checks run in a fixed order and the first failing one decides the outcome:
//  1. blank after normalization → ignored
//  2. equals the root word or already used → duplicate
//  3. needs letters the root word lacks → not composable
//  4. shorter than MinWordLength or unknown to the dictionary → not real
//
// Rejections are reported through Result, not the error. The error is
// non-nil only for ErrNoRound or a dictionary failure; in both cases the
// state is unchanged.
func (s *State) Submit(ctx context.Context, candidate string) (Result, error) {
	if !s.started {
		return Result{}, ErrNoRound
	}

	word := s.normalize(candidate)
	if word == "" {
		return Result{Outcome: OutcomeIgnored, Score: s.score}, nil
	}

	if !s.isOriginal(word) {
		return s.reject(word, OutcomeDuplicate), nil
	}
	if !isComposable(s.rootWord, word) {
		return s.reject(word, OutcomeNotComposable), nil
	}
	ok, err := s.isReal(ctx, word)
	if err != nil {
		return Result{}, fmt.Errorf("round: dictionary lookup %q: %w", word, err)
	}
	if !ok {
		return s.reject(word, OutcomeNotReal), nil
	}

	points := PointsPerLetter * utf8.RuneCountInString(word)
	s.usedWords = slices.Insert(s.usedWords, 0, word)
	s.score += points
	return Result{Outcome: OutcomeAccepted, Word: word, Points: points, Score: s.score}, nil
}

func (s *State) reject(word string, o Outcome) Result {
	return Result{Outcome: o, Word: word, Score: s.score}
}

// isOriginal reports whether word is neither the root word nor already used.
func (s *State) isOriginal(word string) bool {
	if word == s.rootWord {
		return false
	}
	return !slices.Contains(s.usedWords, word)
}

// isReal applies the length floor before asking the dictionary.
func (s *State) isReal(ctx context.Context, word string) (bool, error) {
	if utf8.RuneCountInString(word) < MinWordLength {
		return false, nil
	}
	if s.dict == nil {
		return false, nil
	}
	return s.dict.IsValidWord(ctx, word, s.locale)
}

// normalize trims surrounding whitespace, composes to NFC and lowercases
// for the round's locale.
func (s *State) normalize(raw string) string {
	w := strings.TrimSpace(raw)
	if w == "" {
		return ""
	}
	return s.fold.String(norm.NFC.String(w))
}

// InRound reports whether StartRound has succeeded at least once.
func (s *State) InRound() bool { return s.started }

// RootWord returns the current root word ("" when idle).
func (s *State) RootWord() string { return s.rootWord }

// UsedWords returns a copy of the accepted words, most recent first.
func (s *State) UsedWords() []string { return slices.Clone(s.usedWords) }

// Score returns the current round score.
func (s *State) Score() int { return s.score }

// Locale returns the locale the round validates against.
func (s *State) Locale() string { return s.locale }

// Snapshot returns a copy of the observable round fields.
func (s *State) Snapshot() Snapshot {
	used := make([]string, len(s.usedWords))
	copy(used, s.usedWords)
	return Snapshot{RootWord: s.rootWord, UsedWords: used, Score: s.score}
}

// cryptoPick returns a cryptographically random index in [0, n).
func cryptoPick(n int) int {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(nBig.Int64())
}
