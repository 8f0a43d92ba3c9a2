// internal/round/types.go
//
// Core type definitions for the Word Scramble round engine.
// Defines:
//   - Outcome: how a single submission was classified.
//   - Result: what Submit reports back to the presentation layer.
//   - Snapshot: a value copy of the observable round fields.
//   - Dictionary: the capability used for the "is this a real word" check.

package round

import "context"

// Outcome represents the classification of one submitted word.
// Possible values:
//   - "accepted":       word committed, score increased.
//   - "duplicate":      word equals the root word or was already used.
//   - "not_composable": word needs letters the root word does not have.
//   - "not_real":       word is too short or unknown to the dictionary.
//   - "ignored":        blank input, nothing happened.
type Outcome string

const (
	OutcomeAccepted      Outcome = "accepted"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeNotComposable Outcome = "not_composable"
	OutcomeNotReal       Outcome = "not_real"
	OutcomeIgnored       Outcome = "ignored"
)

// Rejected reports whether o is one of the three rejection outcomes.
func (o Outcome) Rejected() bool {
	switch o {
	case OutcomeDuplicate, OutcomeNotComposable, OutcomeNotReal:
		return true
	}
	return false
}

// Result is returned by Submit.
type Result struct {
	Outcome Outcome // Classification of the submission.
	Word    string  // Normalized candidate (empty when ignored).
	Points  int     // Points awarded; zero unless accepted.
	Score   int     // Round score after the submission.
}

// Err maps a rejection to its sentinel error, nil for accepted/ignored.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeDuplicate:
		return ErrDuplicateWord
	case OutcomeNotComposable:
		return ErrNotComposable
	case OutcomeNotReal:
		return ErrNotARealWord
	}
	return nil
}

// Snapshot is a copy of the fields a UI renders.
type Snapshot struct {
	RootWord  string   `json:"rootWord"`
	UsedWords []string `json:"usedWords"`
	Score     int      `json:"score"`
}

// Dictionary classifies a single token as a real word for a locale.
// Implementations may be backed by memory, SQLite, a remote API, etc.
type Dictionary interface {
	IsValidWord(ctx context.Context, word, locale string) (bool, error)
}

// DictionaryFunc adapts an ordinary function to the Dictionary interface.
type DictionaryFunc func(ctx context.Context, word, locale string) (bool, error)

// IsValidWord calls f(ctx, word, locale).
func (f DictionaryFunc) IsValidWord(ctx context.Context, word, locale string) (bool, error) {
	return f(ctx, word, locale)
}
