package prompt

import (
	"errors"
	"strings"
	"testing"
)

const testReport = "[3x] Dec 10 <0> LabSZ sshd[24245]: Failed password for root from 112.95.230.3 port <1> ssh2\n" +
	"     <0>: 07:28:03, 07:28:05, 07:28:08 | <1>: 54087, 55618, 57138"

func TestBuildExplain(t *testing.T) {
	msgs, err := Build(TypeExplain, BuildOptions{
		Report: testReport,
		Stats:  "3 lines -> 1 patterns (3.0x)",
		Files:  []string{"auth.log"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Errorf("roles = %q, %q", msgs[0].Role, msgs[1].Role)
	}
	if msgs[0].Content != explainSystem {
		t.Error("explain should use the explain system prompt")
	}

	user := msgs[1].Content
	for _, want := range []string{"Explain the following", "Source file: auth.log", "Compaction: 3 lines", testReport} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q:\n%s", want, user)
		}
	}
	if strings.Contains(user, "redacted") {
		t.Error("redaction note should only appear when Redacted is set")
	}
}

func TestBuildQuestion(t *testing.T) {
	msgs, err := Build(TypeQuestion, BuildOptions{
		Report:   testReport,
		Question: "Which ports were targeted?",
		Files:    []string{"a.log", "b.log"},
		Redacted: true,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if msgs[0].Content != questionSystem {
		t.Error("question should use the question system prompt")
	}

	user := msgs[1].Content
	if !strings.HasPrefix(user, "Question: Which ports were targeted?") {
		t.Errorf("user message should start with the question:\n%s", user)
	}
	for _, want := range []string{"Source files (2): a.log, b.log", "redacted"} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}

func TestBuildStdinSource(t *testing.T) {
	msgs, err := Build(TypeExplain, BuildOptions{Report: "x"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(msgs[1].Content, "Source: standard input") {
		t.Error("no files should be described as standard input")
	}
}

func TestBuildMissingFields(t *testing.T) {
	tests := []struct {
		name string
		pt   PromptType
		opts BuildOptions
	}{
		{"explain without report", TypeExplain, BuildOptions{}},
		{"blank report", TypeExplain, BuildOptions{Report: "  \n"}},
		{"question without question", TypeQuestion, BuildOptions{Report: testReport}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.pt, tt.opts)
			if !errors.Is(err, ErrMissingField) {
				t.Errorf("Build() error = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestSystemPromptsDescribeNotation(t *testing.T) {
	for _, pt := range []PromptType{TypeExplain, TypeQuestion} {
		sp := systemPrompt(pt)
		for _, want := range []string{"[Nx]", "<0>", "Binary Images"} {
			if !strings.Contains(sp, want) {
				t.Errorf("%s system prompt missing %q", pt, want)
			}
		}
	}
}

func TestUnknownTypeFallsBackToExplain(t *testing.T) {
	msgs, err := Build(PromptType("summarize"), BuildOptions{Report: testReport})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if msgs[0].Content != explainSystem {
		t.Error("unknown types should fall back to explain")
	}
}
