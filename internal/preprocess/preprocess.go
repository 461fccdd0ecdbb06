package preprocess

import (
	"log/slog"
	"strings"
)

// Preprocessor runs the configured normalization stages over a line slice.
type Preprocessor struct {
	stripIndent  bool
	binaryImages bool
	redactor     *Redactor
	logger       *slog.Logger
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithStripIndent enables leading indentation and tree-marker removal.
// Default is disabled.
func WithStripIndent(enabled bool) Option {
	return func(p *Preprocessor) {
		p.stripIndent = enabled
	}
}

// WithBinaryImages enables splitting binary image lines into their own
// section. Default is disabled.
func WithBinaryImages(enabled bool) Option {
	return func(p *Preprocessor) {
		p.binaryImages = enabled
	}
}

// WithRedactor sets the redactor applied to every line. A nil redactor
// disables redaction, which is the default.
func WithRedactor(r *Redactor) Option {
	return func(p *Preprocessor) {
		p.redactor = r
	}
}

// WithLogger sets the logger for per-stage debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preprocessor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Preprocessor. With no options it passes lines through.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the output of Process.
type Result struct {
	// Lines is the engine input.
	Lines []string

	// Images holds the binary image lines split out of the input.
	Images BinaryImages
}

// Process applies the enabled stages in order: binary image split, indent
// stripping, redaction. The input slice is not modified.
func (p *Preprocessor) Process(lines []string) Result {
	var res Result

	if p.binaryImages {
		res.Lines, res.Images = SplitBinaryImages(lines)
		p.logger.Debug("split binary images",
			"app", len(res.Images.App),
			"system", res.Images.System)
	} else {
		res.Lines = append([]string(nil), lines...)
	}

	if p.stripIndent {
		for i, line := range res.Lines {
			res.Lines[i] = StripIndent(line)
		}
	}

	if p.redactor != nil {
		changed := p.redactor.RedactLines(res.Lines)
		changed += p.redactor.RedactLines(res.Images.App)
		p.logger.Debug("redacted lines", "changed", changed)
	}

	return res
}

// Append joins an engine report with the binary images section. The blank
// separator line is only emitted when the report is not empty.
func (r Result) Append(report string) string {
	if r.Images.Empty() {
		return report
	}
	section := strings.Join(r.Images.Lines(), "\n")
	if report == "" {
		return section
	}
	return report + "\n\n" + section
}
