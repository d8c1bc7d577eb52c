// Package normalize turns raw positional sheet rows into ClimbRecords.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/okian/cadenas/internal/domain/bonus"
	"github.com/okian/cadenas/internal/domain/model"
)

// Column positions in a raw row. Columns 1-4 and 10-13 are not used.
const (
	ColAthlete   = 0
	ColDate      = 5
	ColRouteName = 6
	ColCrag      = 7
	ColGrade     = 8
	ColBonusCode = 9
	ColPoints    = 14
)

// DefaultDateLayouts are tried in order when parsing the date column.
var DefaultDateLayouts = []string{ //nolint:gochecknoglobals // read-only defaults
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithDateLayouts replaces the accepted date layouts.
func WithDateLayouts(layouts []string) Option {
	return func(n *Normalizer) {
		if len(layouts) > 0 {
			n.layouts = append([]string(nil), layouts...)
		}
	}
}

// Normalizer converts rows using a bonus classifier.
type Normalizer struct {
	classifier bonus.Classifier
	layouts    []string
}

// Stats counts data-quality findings over a batch of rows. None of them
// cause a row to be dropped.
type Stats struct {
	Rows             int
	MissingAthlete   int
	UnknownBonusCode int
	UnparsableDate   int
	UnparsablePoints int
}

// New creates a Normalizer.
func New(classifier bonus.Classifier, opts ...Option) *Normalizer {
	n := &Normalizer{
		classifier: classifier,
		layouts:    DefaultDateLayouts,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts one row. Absent cells become empty strings and
// points that are absent or unparsable become 0; it never fails.
func (n *Normalizer) Normalize(row []string) model.ClimbRecord {
	code := cell(row, ColBonusCode)
	class := n.classifier.Classify(code)
	date := cell(row, ColDate)
	points, _ := ParsePoints(cell(row, ColPoints))

	return model.ClimbRecord{
		Athlete:    cell(row, ColAthlete),
		Date:       date,
		RouteName:  cell(row, ColRouteName),
		Crag:       cell(row, ColCrag),
		Grade:      cell(row, ColGrade),
		BonusCode:  code,
		BonusLabel: class.Label,
		Discipline: class.Discipline,
		Points:     points,
		LoggedAt:   n.ParseDate(date),
	}
}

// NormalizeAll converts rows in order and reports data-quality stats.
func (n *Normalizer) NormalizeAll(rows [][]string) ([]model.ClimbRecord, Stats) {
	records := make([]model.ClimbRecord, 0, len(rows))
	stats := Stats{Rows: len(rows)}
	known, canCheck := n.classifier.(interface{ Known(string) bool })

	for _, row := range rows {
		rec := n.Normalize(row)
		records = append(records, rec)

		if rec.Athlete == "" {
			stats.MissingAthlete++
		}
		if canCheck && rec.BonusCode != "" && !known.Known(rec.BonusCode) {
			stats.UnknownBonusCode++
		}
		if rec.LoggedAt.IsZero() {
			stats.UnparsableDate++
		}
		if _, ok := ParsePoints(cell(row, ColPoints)); !ok {
			stats.UnparsablePoints++
		}
	}
	return records, stats
}

// ParseDate parses s with the configured layouts. It returns the zero time
// when nothing matches.
func (n *Normalizer) ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range n.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParsePoints reads the longest leading decimal number of s, ignoring
// leading whitespace, so "12 pts" is 12 and "5,6" is 5. The bool is false
// when no number is present, in which case the value is 0.
func ParsePoints(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\r\n")
	end := numericPrefix(s)
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// numericPrefix returns the length of the longest prefix of s shaped like
// [+-]digits[.digits][(e|E)[+-]digits], requiring at least one digit.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
