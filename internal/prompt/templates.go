package prompt

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/squash/internal/llm"
)

// Build constructs a system message followed by a user message carrying the
// report, ready to be sent to any llm.Provider.
//
// Report is required for every type; TypeQuestion also requires Question.
// Returns ErrMissingField if a required field is absent.
func Build(pt PromptType, opts BuildOptions) ([]llm.Message, error) {
	if strings.TrimSpace(opts.Report) == "" {
		return nil, missingField("Report")
	}

	var sb strings.Builder
	switch pt {
	case TypeQuestion:
		if strings.TrimSpace(opts.Question) == "" {
			return nil, missingField("Question")
		}
		sb.WriteString("Question: ")
		sb.WriteString(opts.Question)
		sb.WriteString("\n\n")
	default:
		pt = TypeExplain
		sb.WriteString("Explain the following compacted log report.\n\n")
	}

	appendContext(&sb, opts)
	sb.WriteString("Report:\n")
	sb.WriteString(opts.Report)
	sb.WriteString("\n")

	return []llm.Message{
		{Role: "system", Content: systemPrompt(pt)},
		{Role: "user", Content: sb.String()},
	}, nil
}

// appendContext writes the source and compaction metadata into sb.
func appendContext(sb *strings.Builder, opts BuildOptions) {
	switch len(opts.Files) {
	case 0:
		sb.WriteString("Source: standard input\n")
	case 1:
		fmt.Fprintf(sb, "Source file: %s\n", opts.Files[0])
	default:
		fmt.Fprintf(sb, "Source files (%d): %s\n", len(opts.Files), strings.Join(opts.Files, ", "))
	}

	if opts.Stats != "" {
		fmt.Fprintf(sb, "Compaction: %s\n", opts.Stats)
	}
	if opts.Redacted {
		sb.WriteString("Note: sensitive values were redacted before compaction.\n")
	}
	sb.WriteString("\n")
}
