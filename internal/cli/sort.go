package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/bbref/internal/table"
)

// sortTable sorts rows in place by the named column. In ascending order numeric
// cells sort by value ahead of non-numeric ones, which compare case-insensitively;
// descending reverses both. The sort is stable so ties keep the site's order.
func sortTable(tbl *table.Table, column string, descending bool) error {
	idx := tbl.Index(column)
	if idx < 0 {
		return fmt.Errorf("sort: %w: %q", table.ErrUnknownColumn, column)
	}

	sort.SliceStable(tbl.Rows, func(i, j int) bool {
		a, b := tbl.Rows[i][idx], tbl.Rows[j][idx]
		if descending {
			a, b = b, a
		}
		return compareCells(a, b)
	})
	return nil
}

// compareCells returns true if cell a should come before cell b
func compareCells(a, b string) bool {
	na, okA := numericValue(a)
	nb, okB := numericValue(b)

	// If both cells are numeric, compare them
	if okA && okB {
		return na < nb
	}

	// If only one is numeric, put the numeric one first
	if okA {
		return true
	}
	if okB {
		return false
	}

	return strings.ToLower(a) < strings.ToLower(b)
}

// numericValue parses stat cells like "60", ".356" or "1,234"
func numericValue(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
