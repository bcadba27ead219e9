// Package lexicon loads the reference vocabulary list that cards are created from.
package lexicon

import "strings"

// Entry is one word of the reference frequency list. Entries are read-only.
type Entry struct {
	Rank         int    `yaml:"rank" json:"rank"`
	Lemma        string `yaml:"lemma" json:"lemma"`
	PartOfSpeech string `yaml:"part_of_speech" json:"partOfSpeech"`
	Definition   string `yaml:"definition" json:"definition"`
	Sample       string `yaml:"sample" json:"sample"`
	FrequencyRaw string `yaml:"frequency_raw" json:"frequencyRaw"`
}

// Matches reports whether the lemma, the definition or the part of speech
// contains the query, ignoring case.
func (e Entry) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Lemma), q) ||
		strings.Contains(strings.ToLower(e.Definition), q) ||
		strings.Contains(strings.ToLower(e.PartOfSpeech), q)
}
