// Package bonus classifies raw bonus codes into canonical labels and
// disciplines.
package bonus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/cadenas/internal/domain/model"
)

// Substrings that mark a code as a boulder ascent. "Bolder" is a spelling
// found in real sheets.
var boulderMarkers = []string{"Boulder", "Bolder"} //nolint:gochecknoglobals // fixed rule

// Entry maps one bonus code to its canonical label and discipline.
type Entry struct {
	Code       string           `koanf:"code"`
	Label      string           `koanf:"label"`
	Discipline model.Discipline `koanf:"discipline"`
}

// Result is the outcome of classifying a code.
type Result struct {
	Label      string
	Discipline model.Discipline
}

// Classifier maps codes to labels. It is safe for concurrent use once built.
type Classifier interface {
	Classify(code string) Result
}

// Option applies a configuration option to the TableClassifier.
type Option func(*tableBuilder)

type tableBuilder struct {
	extra      []Entry
	noDefaults bool
}

// WithEntries appends entries after the built-in table. An entry whose
// code already exists replaces the built-in label.
func WithEntries(entries []Entry) Option {
	return func(b *tableBuilder) {
		b.extra = append(b.extra, entries...)
	}
}

// WithoutDefaults drops the built-in table. Entries given with
// WithEntries are kept regardless of option order.
func WithoutDefaults() Option {
	return func(b *tableBuilder) { b.noDefaults = true }
}

// TableClassifier implements Classifier with an enumerated lookup table.
type TableClassifier struct {
	byCode map[string]Entry
	codes  []string // table order
}

// New builds a classifier from the built-in table plus any options and
// validates it. Every entry's declared discipline must agree with
// DisciplineOf(code).
func New(opts ...Option) (*TableClassifier, error) {
	b := &tableBuilder{}
	for _, opt := range opts {
		opt(b)
	}

	var entries []Entry
	if !b.noDefaults {
		entries = DefaultEntries()
	}
	builtins := len(entries)
	entries = append(entries, b.extra...)

	c := &TableClassifier{byCode: make(map[string]Entry, len(entries))}
	overridable := make(map[string]bool, builtins)
	for _, e := range entries[:builtins] {
		overridable[e.Code] = true
	}

	var errs []error
	for i, e := range entries {
		if err := validateEntry(e); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, exists := c.byCode[e.Code]; exists {
			if i < builtins || !overridable[e.Code] {
				errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateCode, e.Code))
				continue
			}
			// a configured entry replaces a built-in one exactly once
			overridable[e.Code] = false
		} else {
			c.codes = append(c.codes, e.Code)
		}
		c.byCode[e.Code] = e
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// MustNew is New for the built-in table, panicking on an invalid table.
func MustNew(opts ...Option) *TableClassifier {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func validateEntry(e Entry) error {
	switch {
	case e.Code == "":
		return fmt.Errorf("%w: empty code", ErrInvalidEntry)
	case e.Label == "":
		return fmt.Errorf("%w: empty label for %q", ErrInvalidEntry, e.Code)
	case e.Discipline != model.Route && e.Discipline != model.Boulder:
		return fmt.Errorf("%w: unknown discipline %q for %q", ErrInvalidEntry, e.Discipline, e.Code)
	}
	if got := DisciplineOf(e.Code); got != e.Discipline {
		return fmt.Errorf("%w: %q declared %s, code implies %s", ErrInconsistentEntry, e.Code, e.Discipline, got)
	}
	return nil
}

// Classify returns the label and discipline for code. Unknown codes keep
// the code as their label; the empty code yields an empty label.
func (c *TableClassifier) Classify(code string) Result {
	if e, ok := c.byCode[code]; ok {
		return Result{Label: e.Label, Discipline: e.Discipline}
	}
	return Result{Label: code, Discipline: DisciplineOf(code)}
}

// Known reports whether code is in the table.
func (c *TableClassifier) Known(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// Entries returns the table in insertion order.
func (c *TableClassifier) Entries() []Entry {
	out := make([]Entry, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.byCode[code])
	}
	return out
}

// DisciplineOf applies the substring rule: Boulder when the code contains
// a boulder marker, Route otherwise (including the empty code).
func DisciplineOf(code string) model.Discipline {
	for _, m := range boulderMarkers {
		if strings.Contains(code, m) {
			return model.Boulder
		}
	}
	return model.Route
}
