package preprocess

import (
	"regexp"
	"slices"
)

// RedactionPattern is a named detector for one kind of sensitive value.
type RedactionPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Type        string // placeholder prefix: [IPV4:hash], [EMAIL:hash]
	Description string

	// Standalone rejects matches touching a letter, digit or underscore, so
	// scope operators like std::vector are not read as addresses.
	Standalone bool
}

var (
	ipv4Regex = regexp.MustCompile(`\b(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)

	// Only compressed (::) and full eight-group forms, so HH:MM:SS never
	// matches. Leftmost-longest keeps fe80::1 whole instead of stopping at ::.
	ipv6Regex = longest(`(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}|(?:[0-9a-fA-F]{1,4}:){1,7}:|(?:[0-9a-fA-F]{1,4}:){1,6}(?::[0-9a-fA-F]{1,4}){1,6}|::[0-9a-fA-F]{1,4}(?::[0-9a-fA-F]{1,4}){0,6}`)

	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	awsAccessKeyRegex = regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)

	// api_key=..., token: ..., password=...
	apiKeyRegex = regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|token|secret|password|passwd|pwd)["\s]*[:=]["\s]*[a-zA-Z0-9_\-]{8,}`)

	jwtRegex = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*\b`)

	privateKeyRegex = regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`)

	macAddressRegex = regexp.MustCompile(`\b(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}\b`)

	uuidRegex = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)
)

func longest(expr string) *regexp.Regexp {
	re := regexp.MustCompile(expr)
	re.Longest()
	return re
}

// builtInPatterns are tried in this order. Secrets come before addresses so a
// "token=..." pair is replaced as a whole.
var builtInPatterns = []RedactionPattern{
	{Name: "private_key", Regex: privateKeyRegex, Type: "PRIVATE_KEY", Description: "Private key headers"},
	{Name: "jwt", Regex: jwtRegex, Type: "JWT", Description: "JWT tokens"},
	{Name: "api_key", Regex: apiKeyRegex, Type: "SECRET", Description: "API keys, tokens and passwords"},
	{Name: "aws_key", Regex: awsAccessKeyRegex, Type: "AWS_KEY", Description: "AWS access key IDs"},
	{Name: "email", Regex: emailRegex, Type: "EMAIL", Description: "Email addresses"},
	{Name: "ipv4", Regex: ipv4Regex, Type: "IPV4", Description: "IPv4 addresses"},
	{Name: "ipv6", Regex: ipv6Regex, Type: "IPV6", Description: "IPv6 addresses", Standalone: true},
	{Name: "mac_address", Regex: macAddressRegex, Type: "MAC", Description: "MAC addresses"},
	{Name: "uuid", Regex: uuidRegex, Type: "UUID", Description: "UUIDs"},
}

// PatternNames lists every built-in pattern name in application order.
func PatternNames() []string {
	names := make([]string, len(builtInPatterns))
	for i, p := range builtInPatterns {
		names[i] = p.Name
	}
	return names
}

// DefaultPatterns returns the patterns enabled when none are configured.
// MAC addresses and UUIDs are left out: they are rarely sensitive and often
// the very identifiers a reader wants to correlate.
func DefaultPatterns() []string {
	return []string{"private_key", "jwt", "api_key", "aws_key", "email", "ipv4", "ipv6"}
}

// LookupPatterns returns the named patterns in application order, plus the
// names that matched no built-in pattern.
func LookupPatterns(names []string) ([]RedactionPattern, []string) {
	var found []RedactionPattern
	for _, p := range builtInPatterns {
		if slices.Contains(names, p.Name) {
			found = append(found, p)
		}
	}

	var unknown []string
	for _, name := range names {
		if !slices.ContainsFunc(builtInPatterns, func(p RedactionPattern) bool { return p.Name == name }) {
			unknown = append(unknown, name)
		}
	}
	return found, unknown
}
