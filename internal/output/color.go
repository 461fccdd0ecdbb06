package output

import (
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"

	"github.com/bimmerbailey/squash/internal/preprocess"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// ParseColorMode converts "auto", "always" or "never" to a ColorMode,
// defaulting to ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// IsTerminal checks if the given file is a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return IsTerminal(f)
		}
		return false
	}
}

var (
	countPrefixRegex = regexp.MustCompile(`^\[\d+x\] `)
	placeholderRegex = regexp.MustCompile(`<\d+>`)
	omittedRegex     = regexp.MustCompile(`^\[\d+ system libraries omitted\]$`)
)

// ColorizeReport colors a rendered report line by line: repeat counts in
// yellow, placeholders in cyan, sample lines and omitted libraries in gray,
// the binary images header in bold.
func ColorizeReport(report string) string {
	lines := strings.Split(report, "\n")
	for i, line := range lines {
		lines[i] = colorizeReportLine(line)
	}
	return strings.Join(lines, "\n")
}

func colorizeReportLine(line string) string {
	switch {
	case line == "":
		return line
	case line == preprocess.BinaryImagesHeader:
		return colorBold + line + colorReset
	case omittedRegex.MatchString(line):
		return colorGray + line + colorReset
	case strings.HasPrefix(line, "     <"):
		return colorGray + line + colorReset
	}

	prefix := countPrefixRegex.FindString(line)
	rest := placeholderRegex.ReplaceAllStringFunc(line[len(prefix):], func(p string) string {
		return colorCyan + p + colorReset
	})
	if prefix != "" {
		prefix = colorYellow + prefix + colorReset
	}
	return prefix + rest
}
