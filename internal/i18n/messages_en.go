package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, DuplicateTitleKey, "Word used already")
	message.SetString(lang, DuplicateMessageKey, "Be more original")
	message.SetString(lang, NotComposableTitleKey, "Word not recognized")
	message.SetString(lang, NotComposableMessageKey, "You cannot make a word up")
	message.SetString(lang, NotRealTitleKey, "Word not possible")
	message.SetString(lang, NotRealMessageKey, "This is not a real word")

	message.SetString(lang, ScoreLabelKey, "Score: %d")
	message.SetString(lang, NewWordKey, "New word")
	message.SetString(lang, PromptKey, "Enter your word")
}
