package pattern

import "regexp"

// Display forms substituted for recognized token shapes.
const (
	FormBracketedHex = "[<hex>]"
	FormHex          = "<hex>"
	FormTime         = "<time>"
	FormNum          = "<num>"
)

// ClassifiedToken is the lexical view of a single token.
type ClassifiedToken struct {
	// Display is either the verbatim token or one of the Form* placeholders.
	Display string

	// Variable reports whether the token matched a recognized shape.
	Variable bool
}

// shape pairs a whole-token matcher with the display form and type hint it yields.
type shape struct {
	regex *regexp.Regexp
	form  string
	hint  string
}

// Shapes in precedence order; the first match wins.
var shapes = []shape{
	{regex: regexp.MustCompile(`^\[0x[0-9a-fA-F]+\]$`), form: FormBracketedHex, hint: "hex"},
	{regex: regexp.MustCompile(`^0x[0-9a-fA-F]+$`), form: FormHex, hint: "hex"},
	{regex: regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(?:\.\d+)?$`), form: FormTime, hint: "time"},
	{regex: regexp.MustCompile(`^\d{5,}$`), form: FormNum, hint: "num"},
}

// Classify returns the classified form of a verbatim token.
// Tokens matching no shape are returned unchanged and not variable.
func Classify(token string) ClassifiedToken {
	for _, s := range shapes {
		if s.regex.MatchString(token) {
			return ClassifiedToken{Display: s.form, Variable: true}
		}
	}
	return ClassifiedToken{Display: token}
}

// hintFor maps a display form to its type hint, or "" for opaque tokens.
func hintFor(display string) string {
	for _, s := range shapes {
		if s.form == display {
			return s.hint
		}
	}
	return ""
}
