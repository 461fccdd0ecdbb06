package pattern

import "strings"

// buildGroups turns the lines of one bucket into template groups.
// Columns flagged in variable become placeholders; all others are kept
// verbatim. Groups are returned in order of first occurrence.
func buildGroups(b *bucket, profiles []ColumnProfile, variable []bool) []*Group {
	var hints []string
	for c, isVar := range variable {
		if isVar {
			hints = append(hints, profiles[c].Hint())
		}
	}

	index := make(map[string]*Group)
	var groups []*Group

	for _, line := range b.lines {
		tokens := make([]templateToken, len(line.Tokens))
		parts := make([]string, len(line.Tokens))
		var values []string

		for c, tok := range line.Tokens {
			if variable[c] {
				slot := len(values)
				tokens[c] = templateToken{slot: slot}
				parts[c] = placeholder(slot)
				values = append(values, tok)
				continue
			}
			tokens[c] = templateToken{text: tok, slot: -1}
			parts[c] = tok
		}

		key := strings.Join(parts, " ")
		if g, ok := index[key]; ok {
			g.Count++
			for i, v := range values {
				g.Samples[i] = g.Samples[i].Add(v)
			}
			continue
		}

		g := newGroup(tokens, values, hints)
		index[key] = g
		groups = append(groups, g)
	}

	return groups
}
