package prompt

import (
	"errors"
	"fmt"
)

// PromptType identifies the task a prompt asks the model to perform.
type PromptType string

const (
	// TypeExplain asks for a narrative explanation of a compacted report.
	// It is the default mode of `squash explain`.
	TypeExplain PromptType = "explain"

	// TypeQuestion asks the model to answer a specific user question about
	// the report. Used by `squash explain --question`.
	TypeQuestion PromptType = "question"
)

// BuildOptions holds the context needed to build a prompt.
type BuildOptions struct {
	// Report is the compacted report produced by the pattern engine.
	// Required for all prompt types.
	Report string

	// Stats is a one-line summary of the compaction ("120 lines -> 4 patterns").
	// Optional: included in the header when non-empty.
	Stats string

	// Question is the user's natural language question.
	// Required for [TypeQuestion].
	Question string

	// Files is the list of input paths. Empty means stdin.
	Files []string

	// Redacted notes that secrets were replaced by [KIND:hash] placeholders.
	Redacted bool
}

// ErrMissingField is returned by [Build] when a required field for the
// requested [PromptType] is absent from [BuildOptions].
var ErrMissingField = errors.New("prompt: missing required field")

// missingField wraps [ErrMissingField] with the specific field name.
func missingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
