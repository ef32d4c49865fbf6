// Package recurrence turns a declarative schedule configuration into the
// ordered list of its future occurrences and a localized description.
//
// Compute runs validation, generation, hour-window expansion and formatting
// in that order. It is a pure function of its inputs: the engine keeps no
// state between calls and may be shared across goroutines.
package recurrence

import (
	"iter"
	"slices"
	"time"

	"github.com/example/recurrence-preview/internal/localization"
)

// Engine expands configurations into occurrences.
type Engine struct {
	formatter *Formatter
}

// NewEngine constructs an Engine that renders descriptions through tr.
// If tr is nil, the static localization catalog is used.
func NewEngine(tr localization.Translator) *Engine {
	return &Engine{formatter: NewFormatter(tr)}
}

// Compute validates cfg and returns its occurrences relative to reference.
//
// The engine enforces the following semantics:
//   - A disabled configuration yields exactly reference, untouched.
//   - Once yields DateStep when it is after reference, reference otherwise.
//   - Daily occurrences keep the wall-clock time of DateStep.
//   - Weekly and monthly dates are expanded by the hour window.
//   - Outputs are strictly ascending; every output carries the same description.
func (e *Engine) Compute(cfg *Configuration, reference time.Time) ([]Output, error) {
	outputs, _, err := e.ComputeLimit(cfg, reference, 0)
	return outputs, err
}

// ComputeLimit is Compute with generation stopped after limit outputs. The
// boolean reports whether occurrences past the limit were dropped. A
// non-positive limit disables the cap.
func (e *Engine) ComputeLimit(cfg *Configuration, reference time.Time, limit int) ([]Output, bool, error) {
	if err := Validate(cfg); err != nil {
		return nil, false, err
	}

	description := e.describe(cfg, reference)

	if !cfg.Enabled {
		return []Output{{OutputDate: reference, Description: description}}, false, nil
	}

	outputs := make([]Output, 0)
	truncated := false
	for at := range occurrences(cfg, reference) {
		if limit > 0 && len(outputs) == limit {
			truncated = true
			break
		}
		outputs = append(outputs, Output{OutputDate: at, Description: description})
	}
	return outputs, truncated, nil
}

// Describe validates cfg and returns its localized description relative to
// reference.
func (e *Engine) Describe(cfg *Configuration, reference time.Time) (string, error) {
	if err := Validate(cfg); err != nil {
		return "", err
	}
	return e.describe(cfg, reference), nil
}

func (e *Engine) describe(cfg *Configuration, reference time.Time) string {
	formatter := e.formatter
	if formatter == nil {
		formatter = NewFormatter(nil)
	}
	return formatter.Describe(cfg, reference)
}

// Occurrences returns the timestamps of a valid, enabled configuration.
// Callers are expected to have run Validate.
func Occurrences(cfg *Configuration, reference time.Time) []time.Time {
	return slices.Collect(occurrences(cfg, reference))
}

func occurrences(cfg *Configuration, reference time.Time) iter.Seq[time.Time] {
	if cfg.TimeType == TimeTypeOnce {
		return slices.Values([]time.Time{resolveOnce(cfg, reference)})
	}

	switch cfg.RecurringKind {
	case RecurringDaily:
		return generateDaily(cfg)
	case RecurringWeekly:
		return resolveWindow(cfg).expand(generateWeekly(cfg))
	case RecurringMonthly:
		if cfg.MonthlyOnce {
			return resolveWindow(cfg).expand(generateMonthlyOnce(cfg))
		}
		return resolveWindow(cfg).expand(generateMonthlyMore(cfg))
	}
	return func(func(time.Time) bool) {}
}
