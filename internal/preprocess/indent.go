package preprocess

import "regexp"

// indentRegex matches leading whitespace mixed with call-tree markers.
var indentRegex = regexp.MustCompile(`^[\s+!|:]+`)

// StripIndent removes the leading run of whitespace and the tree markers
// '+', '!', '|' and ':' from line.
//
//	"+   ! 1744 ???  (in Live)" -> "1744 ???  (in Live)"
func StripIndent(line string) string {
	loc := indentRegex.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[loc[1]:]
}
