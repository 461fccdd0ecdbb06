package pattern

import (
	"strconv"
	"strings"
)

// Group is one mined template together with its occurrence count and
// representative values for each placeholder.
//
// The number of placeholders in Template always equals len(Samples) and
// len(Hints).
type Group struct {
	// Template is the space-joined literal tokens and positional
	// placeholders <0>, <1>, ... in column order.
	Template string `json:"template" yaml:"template"`

	// Count is the number of input lines folded into the group.
	Count int `json:"count" yaml:"count"`

	// Samples holds, per placeholder, up to MaxSamples distinct verbatim values.
	Samples []SampleSet `json:"samples" yaml:"samples"`

	// Hints holds, per placeholder, "hex", "num", "time" or "".
	Hints []string `json:"hints" yaml:"hints"`

	tokens   []templateToken
	literals map[string]struct{}
}

// templateToken is one position of a template: a literal, or the placeholder
// with ordinal slot.
type templateToken struct {
	text string
	slot int // -1 for literals
}

func (t templateToken) isPlaceholder() bool {
	return t.slot >= 0
}

// sameAs reports textual identity: equal literals, or placeholders at the same ordinal.
func (t templateToken) sameAs(o templateToken) bool {
	if t.isPlaceholder() || o.isPlaceholder() {
		return t.slot == o.slot
	}
	return t.text == o.text
}

// placeholder renders the positional placeholder for slot k.
func placeholder(k int) string {
	return "<" + strconv.Itoa(k) + ">"
}

// Width returns the number of tokens, placeholders included, in the template.
func (g *Group) Width() int {
	return len(g.tokens)
}

// Placeholders returns the number of variable slots in the template.
func (g *Group) Placeholders() int {
	return len(g.Samples)
}

// newGroup seeds a group from its template tokens and the first line's values.
func newGroup(tokens []templateToken, values []string, hints []string) *Group {
	samples := make([]SampleSet, len(values))
	for i, v := range values {
		samples[i] = SampleSet{}.Add(v)
	}
	g := &Group{
		Count:   1,
		Samples: samples,
		Hints:   append([]string(nil), hints...),
		tokens:  tokens,
	}
	g.refresh()
	return g
}

// refresh recomputes Template and the literal set from tokens.
func (g *Group) refresh() {
	parts := make([]string, len(g.tokens))
	g.literals = make(map[string]struct{})
	for i, tok := range g.tokens {
		if tok.isPlaceholder() {
			parts[i] = placeholder(tok.slot)
			continue
		}
		parts[i] = tok.text
		g.literals[tok.text] = struct{}{}
	}
	g.Template = strings.Join(parts, " ")
}
