package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// ErrNoNumericData is returned when a column has no numeric cells to summarize
var ErrNoNumericData = errors.New("no numeric data")

// Summary describes the numeric cells of one column
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes descriptive statistics over the numeric cells of a column.
// Blank and non-numeric cells (league-leader markers, "--") are skipped.
func (t *Table) Summarize(column string) (Summary, error) {
	values, err := t.Column(column)
	if err != nil {
		return Summary{}, err
	}

	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		f, ok := parseNumber(v)
		if !ok {
			continue
		}
		data = append(data, f)
	}
	if len(data) == 0 {
		return Summary{}, fmt.Errorf("column %q: %w", column, ErrNoNumericData)
	}

	s := Summary{Column: column, Count: len(data)}
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, fmt.Errorf("mean of %q: %w", column, err)
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, fmt.Errorf("median of %q: %w", column, err)
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, fmt.Errorf("min of %q: %w", column, err)
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, fmt.Errorf("max of %q: %w", column, err)
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, fmt.Errorf("std dev of %q: %w", column, err)
	}

	return s, nil
}

// parseNumber parses a stat cell, tolerating percent signs and thousands separators
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
