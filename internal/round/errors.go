package round

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRound is returned when Submit is called before any StartRound.
	ErrNoRound = errors.New("round: no round in progress")
	// ErrEmptyWordList means there is no usable root word to start from.
	ErrEmptyWordList = errors.New("round: word list has no root words")

	ErrDuplicateWord = errors.New("word used already")
	ErrNotComposable = errors.New("word cannot be made from the root word")
	ErrNotARealWord  = errors.New("word is not a real word")
)

// ConfigurationError reports a round that cannot start because its inputs
// are unusable. It is fatal for that round only; callers decide whether to
// abort or retry with another list.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("round configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
