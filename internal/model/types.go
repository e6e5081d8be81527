// Package model defines shared data structures.
package model

import "fmt"

// PartOfSpeech identifies the passphrase slot a word list fills.
type PartOfSpeech int

// Parts of speech in passphrase order.
const (
	Adjective PartOfSpeech = iota
	Noun
	Verb
	Adverb
)

// PartsOfSpeech lists every part of speech in passphrase order.
var PartsOfSpeech = []PartOfSpeech{Adjective, Noun, Verb, Adverb}

func (p PartOfSpeech) String() string {
	switch p {
	case Adjective:
		return "adjective"
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adverb:
		return "adverb"
	default:
		return fmt.Sprintf("PartOfSpeech(%d)", int(p))
	}
}

// IndexFile returns the WordNet index file name for the part of speech.
func (p PartOfSpeech) IndexFile() string {
	switch p {
	case Adjective:
		return "index.adj"
	case Noun:
		return "index.noun"
	case Verb:
		return "index.verb"
	case Adverb:
		return "index.adv"
	default:
		return ""
	}
}

// ListFile returns the derived word list file name for the part of speech.
func (p PartOfSpeech) ListFile() string {
	switch p {
	case Adjective:
		return "adjectives.txt"
	case Noun:
		return "nouns.txt"
	case Verb:
		return "verbs.txt"
	case Adverb:
		return "adverbs.txt"
	default:
		return ""
	}
}

// WordEntry is one lexical item with its observed usage frequency.
type WordEntry struct {
	Word      string
	Frequency uint32
}

// WordLists maps each part of speech to its loaded entries.
type WordLists map[PartOfSpeech][]WordEntry

// Variant selects the word list pipeline and passphrase format.
type Variant string

// Supported variants.
const (
	// VariantFrequency filters words against a frequency corpus and
	// emits "N-adjective-noun-verb-adverb".
	VariantFrequency Variant = "frequency"
	// VariantLexical filters words by shape only and emits
	// "adjective-noun-verb-adverb".
	VariantLexical Variant = "lexical"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantFrequency, VariantLexical:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantFrequency, VariantLexical)
	}
}

// Config defines generation settings resolved from flags and config file.
type Config struct {
	Count        int
	MinFrequency uint32
	Redownload   bool
	Variant      Variant
	Seed         int64
	Secure       bool
	Strict       bool
	DataDir      string
	KeepArchive  bool
	WordNetURL   string
	CorpusURL    string
	LogLevel     string
}
