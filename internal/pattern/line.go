package pattern

import "strings"

// Line is a raw input line split into tokens, with each token's classification.
// Tokens and Classified always have the same length.
type Line struct {
	Tokens     []string
	Classified []ClassifiedToken
}

// ParseLine splits raw on runs of whitespace and classifies every token.
// An empty or blank line yields a Line with zero tokens.
func ParseLine(raw string) Line {
	tokens := strings.Fields(raw)
	classified := make([]ClassifiedToken, len(tokens))
	for i, tok := range tokens {
		classified[i] = Classify(tok)
	}
	return Line{Tokens: tokens, Classified: classified}
}

// Width returns the token count of the line.
func (l Line) Width() int {
	return len(l.Tokens)
}
