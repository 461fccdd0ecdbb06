package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
	}{
		{"always", ColorAlways},
		{"ALWAYS", ColorAlways},
		{"never", ColorNever},
		{"auto", ColorAuto},
		{"", ColorAuto},
		{"sometimes", ColorAuto},
	}

	for _, tt := range tests {
		if got := ParseColorMode(tt.in); got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldColorize(t *testing.T) {
	tests := []struct {
		name     string
		mode     ColorMode
		writer   io.Writer
		expected bool
	}{
		{
			name:     "ColorAlways with buffer",
			mode:     ColorAlways,
			writer:   &bytes.Buffer{},
			expected: true,
		},
		{
			name:     "ColorNever with stdout",
			mode:     ColorNever,
			writer:   os.Stdout,
			expected: false,
		},
		{
			name:     "ColorAuto with buffer",
			mode:     ColorAuto,
			writer:   &bytes.Buffer{},
			expected: false,
		},
		{
			name:     "ColorAuto with stdout",
			mode:     ColorAuto,
			writer:   os.Stdout,
			expected: IsTerminal(os.Stdout), // Depends on test environment
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldColorize(tt.mode, tt.writer); got != tt.expected {
				t.Errorf("shouldColorize() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestShouldColorizeRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if shouldColorize(ColorAuto, f) {
		t.Error("a regular file is not a terminal")
	}
}

func TestColorizeReportLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "count and placeholders",
			line: "[3x] port <0> closed",
			want: colorYellow + "[3x] " + colorReset + "port " + colorCyan + "<0>" + colorReset + " closed",
		},
		{
			name: "singleton",
			line: "plain line",
			want: "plain line",
		},
		{
			name: "samples",
			line: "     <0>: a, b",
			want: colorGray + "     <0>: a, b" + colorReset,
		},
		{
			name: "images header",
			line: "=== Binary Images ===",
			want: colorBold + "=== Binary Images ===" + colorReset,
		},
		{
			name: "omitted libraries",
			line: "[12 system libraries omitted]",
			want: colorGray + "[12 system libraries omitted]" + colorReset,
		},
		{
			name: "blank",
			line: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := colorizeReportLine(tt.line); got != tt.want {
				t.Errorf("colorizeReportLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestColorizeReportPreservesContent(t *testing.T) {
	report := "[2x] a <0>\n     <0>: x, y\nsingle\n\n=== Binary Images ===\n[1 system libraries omitted]"
	colored := ColorizeReport(report)

	stripped := colored
	for _, code := range []string{colorReset, colorYellow, colorCyan, colorGray, colorBold} {
		stripped = strings.ReplaceAll(stripped, code, "")
	}
	if stripped != report {
		t.Errorf("content changed:\n%q\nwant\n%q", stripped, report)
	}
}
