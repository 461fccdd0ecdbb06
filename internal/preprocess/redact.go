package preprocess

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
)

// Redactor replaces sensitive values with correlation-preserving placeholders.
//
// The same value always maps to the same placeholder, so two lines that
// differed only by a redacted address still fold into one template, and a
// value that recurs across templates stays recognizable:
//
//	"Connection from 192.168.1.1 failed" -> "Connection from [IPV4:c5a4] failed"
type Redactor struct {
	patterns []RedactionPattern

	mu           sync.Mutex
	placeholders map[string]string // original value -> placeholder
}

// NewRedactor creates a Redactor for the named patterns. An empty list
// selects DefaultPatterns. Unknown names are an error.
func NewRedactor(names []string) (*Redactor, error) {
	if len(names) == 0 {
		names = DefaultPatterns()
	}

	patterns, unknown := LookupPatterns(names)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown redaction patterns %q (available: %v)", unknown, PatternNames())
	}

	return &Redactor{
		patterns:     patterns,
		placeholders: make(map[string]string),
	}, nil
}

// Redact rewrites every match of every pattern in line.
func (r *Redactor) Redact(line string) string {
	for _, p := range r.patterns {
		line = r.replace(line, p)
	}
	return line
}

func (r *Redactor) replace(line string, p RedactionPattern) string {
	matches := p.Regex.FindAllStringIndex(line, -1)
	if matches == nil {
		return line
	}

	var b strings.Builder
	last, changed := 0, false
	for _, m := range matches {
		if p.Standalone && !standalone(line, m[0], m[1]) {
			continue
		}
		b.WriteString(line[last:m[0]])
		b.WriteString(r.placeholder(line[m[0]:m[1]], p.Type))
		last, changed = m[1], true
	}
	if !changed {
		return line
	}
	b.WriteString(line[last:])
	return b.String()
}

// standalone reports whether line[start:end] has no identifier character
// directly before or after it.
func standalone(line string, start, end int) bool {
	if start > 0 && isIdentByte(line[start-1]) {
		return false
	}
	return end >= len(line) || !isIdentByte(line[end])
}

func isIdentByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// RedactLines redacts lines in place and returns the number of lines changed.
func (r *Redactor) RedactLines(lines []string) int {
	changed := 0
	for i, line := range lines {
		if redacted := r.Redact(line); redacted != line {
			lines[i] = redacted
			changed++
		}
	}
	return changed
}

// Values returns a copy of the value -> placeholder table.
func (r *Redactor) Values() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]string, len(r.placeholders))
	for k, v := range r.placeholders {
		out[k] = v
	}
	return out
}

func (r *Redactor) placeholder(value, kind string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.placeholders[value]; ok {
		return p
	}

	// First 2 bytes of SHA-256: four hex characters.
	sum := sha256.Sum256([]byte(value))
	p := fmt.Sprintf("[%s:%s]", kind, hex.EncodeToString(sum[:2]))
	r.placeholders[value] = p
	return p
}
