// Package moderation rejects comment text containing banned words.
package moderation

import (
	"strings"

	"yaportal/internal/forms"
)

var BadWords = []string{"редиска", "негодяй"}

const Warning = "Не ругайтесь!"

// ContainsBadWords reports whether any word occurs in text. Matching is
// case-sensitive and substring based, so a word inside a longer word counts.
func ContainsBadWords(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Check returns a field error on "text" when text contains a banned word.
func Check(text string) error {
	if ContainsBadWords(text, BadWords) {
		return forms.FieldError("text", Warning)
	}
	return nil
}
