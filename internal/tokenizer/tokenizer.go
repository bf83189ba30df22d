package tokenizer

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Tokenize returns the tokens of a sentence including punctuation.
//
//	Tokenize("Bob dropped the apple. Where is the apple?")
//	=> [Bob dropped the apple . Where is the apple ?]
func Tokenize(sent string) []string {
	var tokens []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			tokens = append(tokens, s)
		}
	}

	last := 0
	for _, loc := range nonWord.FindAllStringIndex(sent, -1) {
		add(sent[last:loc[0]])
		add(sent[loc[0]:loc[1]])
		last = loc[1]
	}
	add(sent[last:])
	return tokens
}
