// Package wordlist builds, caches and loads the per part of speech word lists.
package wordlist

import (
	"unicode"
	"unicode/utf8"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

const minLexicalLength = 4

// KnownWord accepts a dictionary index token whose first character is an
// ASCII letter.
func KnownWord(token string) bool {
	if token == "" {
		return false
	}
	ch := token[0]
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// LexicalWord accepts purely alphabetic words longer than three characters.
// Compounds ("ice_cream"), hyphenations and numerals are rejected.
func LexicalWord(word string) bool {
	if utf8.RuneCountInString(word) < minLexicalLength {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
