package pattern

import "log/slog"

// Miner mines templates from a complete sequence of lines.
type Miner struct {
	similarity float64
	thresholds Thresholds
	logger     *slog.Logger
}

// Option configures a Miner.
type Option func(*Miner)

// WithSimilarity sets the merge threshold. Values outside (0, 1] are ignored.
// Default is DefaultSimilarity.
func WithSimilarity(s float64) Option {
	return func(m *Miner) {
		if s > 0 && s <= 1 {
			m.similarity = s
		}
	}
}

// WithThresholds replaces the entropy cutoff tuning. Every knob is used as
// given, zero included; start from DefaultThresholds to change only one.
// An invalid tuning is ignored.
func WithThresholds(t Thresholds) Option {
	return func(m *Miner) {
		if t.Valid() {
			m.thresholds = t
		}
	}
}

// WithLogger sets the logger used for per-bucket and per-merge debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Miner) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Miner with the given options.
func New(opts ...Option) *Miner {
	m := &Miner{
		similarity: DefaultSimilarity,
		thresholds: DefaultThresholds(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mine runs the whole pipeline over lines and returns the final groups in
// report order. The counts of the returned groups sum to len(lines).
func (m *Miner) Mine(lines []string) []*Group {
	if len(lines) == 0 {
		return nil
	}

	parsed := make([]Line, len(lines))
	for i, raw := range lines {
		parsed[i] = ParseLine(raw)
	}

	var groups []*Group
	for _, b := range groupByLength(parsed) {
		profiles := profileColumns(b)
		cutoff := m.thresholds.Select(profiles)
		variable := variableColumns(profiles, cutoff)
		built := buildGroups(b, profiles, variable)

		m.logger.Debug("mined bucket",
			"width", b.width,
			"lines", len(b.lines),
			"cutoff", cutoff,
			"variable_columns", countTrue(variable),
			"templates", len(built))

		groups = append(groups, built...)
	}

	before := len(groups)
	groups = mergeGroups(groups, m.similarity, m.logger)
	m.logger.Debug("merge pass complete", "before", before, "after", len(groups))

	Sort(groups)
	return groups
}

// Compact mines lines and renders the report. It returns "" for no input.
func (m *Miner) Compact(lines []string) string {
	return Render(m.Mine(lines))
}

// Compact mines lines with the default tuning and renders the report.
func Compact(lines []string) string {
	return New().Compact(lines)
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
