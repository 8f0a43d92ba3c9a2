// Package i18n holds the user-facing strings shown for round outcomes.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/robalobadob/wordscramble/internal/round"
)

// Message keys.
const (
	DuplicateTitleKey       = "alert.duplicate.title"
	DuplicateMessageKey     = "alert.duplicate.message"
	NotComposableTitleKey   = "alert.not_composable.title"
	NotComposableMessageKey = "alert.not_composable.message"
	NotRealTitleKey         = "alert.not_real.title"
	NotRealMessageKey       = "alert.not_real.message"
	ScoreLabelKey           = "score.label"
	NewWordKey              = "action.new_word"
	PromptKey               = "prompt.enter_word"
)

// Alert is the title/message pair shown for a rejected word.
type Alert struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Default returns the default language tag.
func Default() language.Tag { return language.English }

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// AlertFor returns the alert for a rejection outcome. The bool is false for
// outcomes that show no alert (accepted, ignored).
func AlertFor(p *message.Printer, o round.Outcome) (Alert, bool) {
	var title, msg string
	switch o {
	case round.OutcomeDuplicate:
		title, msg = DuplicateTitleKey, DuplicateMessageKey
	case round.OutcomeNotComposable:
		title, msg = NotComposableTitleKey, NotComposableMessageKey
	case round.OutcomeNotReal:
		title, msg = NotRealTitleKey, NotRealMessageKey
	default:
		return Alert{}, false
	}
	return Alert{Title: p.Sprintf(title), Message: p.Sprintf(msg)}, true
}

// ScoreLabel renders "Score: n".
func ScoreLabel(p *message.Printer, score int) string {
	return p.Sprintf(ScoreLabelKey, score)
}
