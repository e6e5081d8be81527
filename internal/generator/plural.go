package generator

import "github.com/gertd/go-pluralize"

var pluralizer = pluralize.NewClient()

// Plural returns the English plural of a noun, handling regular suffixes
// and common irregulars ("mouse" -> "mice").
func Plural(noun string) string {
	if noun == "" {
		return noun
	}
	return pluralizer.Plural(noun)
}
