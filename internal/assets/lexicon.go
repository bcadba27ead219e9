package assets

import (
	_ "embed"
)

//go:embed lexicon/es.csv
var spanishLexicon []byte

var lexicons = map[string][]byte{
	"es": spanishLexicon,
}

// LexiconCSV returns the bundled frequency list of the language, in the lexicon CSV format.
func LexiconCSV(language string) ([]byte, bool) {
	data, ok := lexicons[language]
	return data, ok
}
