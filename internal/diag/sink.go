package diag

import (
	"fmt"
	"os"
	"sort"

	"github.com/hbollon/go-edlib"
)

// Sink collects diagnostics for one engine run and renders them, tracking
// whether any error-severity diagnostic was reported so the CLI can set a
// non-zero exit status.
type Sink struct {
	Strict bool // promote Recoverable to Fatal, for CI use

	diagnostics []*Diagnostic
	fatal       bool
}

// NewSink creates an empty diagnostic sink.
func NewSink(strict bool) *Sink {
	return &Sink{Strict: strict}
}

// Report records a diagnostic at the given position with positional
// arguments, printed later via Flush.
func (s *Sink) Report(code Code, pos Position, args ...any) *Diagnostic {
	sev := SeverityOf(code)
	if s.Strict && sev == Recoverable {
		sev = Fatal
	}
	d := &Diagnostic{Code: code, Severity: sev, Pos: pos, Args: args}
	s.diagnostics = append(s.diagnostics, d)
	if sev == Fatal {
		s.fatal = true
	}
	return d
}

// ReportWithSuggestion is Report plus a fuzzy "did you mean" hint computed
// against a closed catalogue of valid names (entity names, element names,
// attribute names). It never changes the diagnostic's code or severity —
// purely a rendering aid.
func (s *Sink) ReportWithSuggestion(code Code, pos Position, got string, valid []string, args ...any) *Diagnostic {
	d := s.Report(code, pos, args...)
	if hint := suggest(got, valid); hint != "" {
		d.Hint = fmt.Sprintf("did you mean %q?", hint)
	}
	return d
}

// suggest returns the closest match to got among valid by Levenshtein edit
// distance, or "" if nothing is close enough to be useful.
func suggest(got string, valid []string) string {
	if got == "" || len(valid) == 0 {
		return ""
	}
	const maxUsefulDistance = 3
	best := ""
	bestDist := maxUsefulDistance + 1
	for _, candidate := range valid {
		d := edlib.LevenshteinDistance(got, candidate)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	if best == "" || bestDist > maxUsefulDistance {
		return ""
	}
	return best
}

// HasErrors reports whether any Fatal-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	return s.fatal
}

// All returns every recorded diagnostic, in report order.
func (s *Sink) All() []*Diagnostic {
	return s.diagnostics
}

// Flush writes every diagnostic to stderr, sorted by file then line, the
// way a batch compiler reports errors once at the end of a pass.
func (s *Sink) Flush() {
	sorted := make([]*Diagnostic, len(s.diagnostics))
	copy(sorted, s.diagnostics)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.File != sorted[j].Pos.File {
			return sorted[i].Pos.File < sorted[j].Pos.File
		}
		return sorted[i].Pos.Line < sorted[j].Pos.Line
	})
	for _, d := range sorted {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}
