// Package generator assembles passphrases from loaded word lists.
package generator

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/phraseforge/internal/model"
)

// ErrNoCandidates is returned in strict mode when a part of speech has no
// word above the frequency threshold.
var ErrNoCandidates = errors.New("no words above the frequency threshold")

const (
	// The numeric token is drawn from [minNumber, maxNumber).
	minNumber = 1
	maxNumber = 999
)

// Fallback words used by the lexical variant when a list is empty.
var lexicalFallbacks = map[model.PartOfSpeech]string{
	model.Adjective: "quick",
	model.Noun:      "fox",
	model.Verb:      "jumps",
	model.Adverb:    "swiftly",
}

// Passphrase is one generated passphrase.
type Passphrase struct {
	Text string
	// Number is the numeric token, 0 for the lexical variant.
	Number int
	// Words holds the chosen word per slot, after pluralization.
	Words map[model.PartOfSpeech]string
	// Missing lists the parts of speech that had no candidates.
	Missing []model.PartOfSpeech
}

func (p Passphrase) String() string {
	return p.Text
}

// Generator produces randomized passphrases. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// NewSecure returns a Generator backed by crypto/rand.
func NewSecure() *Generator {
	return &Generator{rnd: rand.New(cryptoSource{})}
}

// Frequency builds "N-adjective-noun-verb-adverb" from words whose frequency
// exceeds minFrequency. A part with no such word yields an empty field and
// is reported in Missing. The noun is pluralized when N > 1.
func (g *Generator) Frequency(lists model.WordLists, minFrequency uint32) Passphrase {
	num := minNumber + g.rnd.Intn(maxNumber-minNumber)

	p := Passphrase{Number: num, Words: make(map[model.PartOfSpeech]string, len(model.PartsOfSpeech))}
	for _, pos := range model.PartsOfSpeech {
		word, ok := g.pickAbove(lists[pos], minFrequency)
		if !ok {
			p.Missing = append(p.Missing, pos)
		}
		if pos == model.Noun && num > 1 && word != "" {
			word = Plural(word)
		}
		p.Words[pos] = word
	}
	p.Text = join(strconv.Itoa(num), p.Words)
	return p
}

// FrequencyStrict is Frequency but fails with ErrNoCandidates instead of
// leaving a field empty.
func (g *Generator) FrequencyStrict(lists model.WordLists, minFrequency uint32) (Passphrase, error) {
	p := g.Frequency(lists, minFrequency)
	if len(p.Missing) > 0 {
		return p, &MissingError{Parts: p.Missing, MinFrequency: minFrequency}
	}
	return p, nil
}

// Lexical builds "adjective-noun-verb-adverb" with a uniform pick per list,
// substituting a fixed fallback word for an empty list.
func (g *Generator) Lexical(lists model.WordLists) Passphrase {
	p := Passphrase{Words: make(map[model.PartOfSpeech]string, len(model.PartsOfSpeech))}
	for _, pos := range model.PartsOfSpeech {
		entries := lists[pos]
		if len(entries) == 0 {
			p.Words[pos] = lexicalFallbacks[pos]
			p.Missing = append(p.Missing, pos)
			continue
		}
		p.Words[pos] = entries[g.rnd.Intn(len(entries))].Word
	}
	p.Text = join("", p.Words)
	return p
}

func (g *Generator) pickAbove(entries []model.WordEntry, minFrequency uint32) (string, bool) {
	filtered := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Frequency > minFrequency {
			filtered = append(filtered, entry.Word)
		}
	}
	if len(filtered) == 0 {
		return "", false
	}
	return filtered[g.rnd.Intn(len(filtered))], true
}

func join(prefix string, words map[model.PartOfSpeech]string) string {
	parts := make([]string, 0, len(model.PartsOfSpeech)+1)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	for _, pos := range model.PartsOfSpeech {
		parts = append(parts, words[pos])
	}
	return strings.Join(parts, "-")
}

// CountAbove returns how many entries exceed minFrequency.
func CountAbove(entries []model.WordEntry, minFrequency uint32) int {
	n := 0
	for _, entry := range entries {
		if entry.Frequency > minFrequency {
			n++
		}
	}
	return n
}
