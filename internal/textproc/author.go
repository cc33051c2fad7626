package textproc

import (
	"strings"
	"unicode"

	"github.com/shelfscan/shelfscan/internal/dictionary"
)

// Author names on spines rarely exceed four words.
const maxAuthorTokens = 4

// AuthorDetector finds person names inside cleaned spine lines, anchored
// on the first-name dictionary.
type AuthorDetector struct {
	dict     *dictionary.Dict
	composer *Composer
}

// NewAuthorDetector builds a detector sharing the composer used for
// compound repair, so glued name tokens get the same treatment as glued
// title tokens.
func NewAuthorDetector(dict *dictionary.Dict, composer *Composer) *AuthorDetector {
	return &AuthorDetector{dict: dict, composer: composer}
}

// LooksLikeAuthor reports whether text plausibly is a person's name:
// two to four tokens (of more than one character), all capitalized, at
// least one of them a known first name.
func (d *AuthorDetector) LooksLikeAuthor(text string) bool {
	var tokens []string
	for _, tok := range strings.Fields(text) {
		if len([]rune(tok)) > 1 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) < 2 || len(tokens) > maxAuthorTokens {
		return false
	}
	hasFirstName := false
	for _, tok := range tokens {
		if !startsUpper(tok) {
			return false
		}
		if d.dict.IsKnownFirstName(tok) {
			hasFirstName = true
		}
	}
	return hasFirstName
}

// ExtractAuthor scans line for the leftmost, then shortest, window of
// 2-4 consecutive tokens that looks like an author name. Glued name
// tokens are repaired through the composer first, so "JeanTeulé" still
// anchors a window. The second return is false when no window qualifies.
func (d *AuthorDetector) ExtractAuthor(line string) (string, bool) {
	var tokens []string
	for _, tok := range strings.Fields(line) {
		if len([]rune(tok)) > 3 && startsUpper(tok) {
			if split := d.composer.SplitWord(tok); split != tok {
				tokens = append(tokens, strings.Fields(split)...)
				continue
			}
		}
		tokens = append(tokens, tok)
	}

	for i := 0; i < len(tokens)-1; i++ {
		// Windows are anchored on the first-name dictionary: a French
		// spine names its author "Prénom Nom", so a window that does not
		// open with a known first name is title text, not an author.
		if !d.dict.IsKnownFirstName(tokens[i]) {
			continue
		}
		for j := i + 2; j <= min(i+maxAuthorTokens, len(tokens)); j++ {
			window := strings.Join(tokens[i:j], " ")
			if d.LooksLikeAuthor(window) {
				return window, true
			}
		}
	}
	return "", false
}

// startsUpper covers accented uppercase as well as ASCII.
func startsUpper(tok string) bool {
	for _, r := range tok {
		return unicode.IsUpper(r)
	}
	return false
}
