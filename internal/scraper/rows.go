package scraper

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bbref/internal/logger"
	"github.com/pfrederiksen/bbref/internal/table"
)

const (
	// IdentifierColumn is inserted before NameColumn when cells carry player ids
	IdentifierColumn = "Identifier"
	NameColumn       = "Name"

	// identifierAttr holds a cell's player id, separate from its display text
	identifierAttr = "data-append-csv"
)

var (
	// ErrNoHeader is returned when a table has no header row
	ErrNoHeader = errors.New("table has no header row")

	// ErrNoNameColumn is returned when identifiers are requested but no Name column exists
	ErrNoNameColumn = errors.New("table has no Name column")
)

// HeaderPolicy decides which header row is kept when a table repeats its header
type HeaderPolicy int

const (
	// HeaderLastWins keeps the last header row seen, as the site's long tables expect
	HeaderLastWins HeaderPolicy = iota
	// HeaderFirstWins keeps the first header row and ignores repeats
	HeaderFirstWins
)

// RowSpec describes how to walk one kind of table
type RowSpec struct {
	// Name labels the table in logs
	Name string
	// RankStat is the data-stat of the leading row-label cell (rank, year_ID, ranker)
	RankStat string
	// AppendIdentifier emits cell identifiers and adds IdentifierColumn to the header.
	// Rows without any identifier are dropped.
	AppendIdentifier bool
	// SkipClasses drops rows carrying any of these classes (spacer, minors_table)
	SkipClasses []string
	// SkipStats drops rows with a th of one of these data-stat values
	SkipStats []string
	// HeaderFromHead takes the header from thead and data rows from tbody only
	HeaderFromHead bool
	// HeaderPolicy applies when HeaderFromHead is false
	HeaderPolicy HeaderPolicy
}

// Normalize walks the rows of a table and builds a Table from its data rows.
// Structural rows are skipped and rows that cannot form a complete record are
// dropped, never emitted partially.
func Normalize(sel *goquery.Selection, rs RowSpec) (*table.Table, error) {
	n := &normalizer{rs: rs}

	rows := sel.Find("tr")
	if rs.HeaderFromHead {
		n.header = cellTexts(sel.Find("thead th"))
		rows = sel.Find("tbody tr")
	}

	rows.Each(func(_ int, tr *goquery.Selection) {
		n.visit(tr)
	})

	return n.build()
}

type normalizer struct {
	rs       RowSpec
	header   []string
	repeated int
	rows     [][]string
	dropped  map[string]int
}

func (n *normalizer) visit(tr *goquery.Selection) {
	if reason := n.skipReason(tr); reason != "" {
		n.drop(reason)
		return
	}

	if !n.rs.HeaderFromHead {
		if ths := tr.Find("th.poptip"); ths.Length() > 0 {
			n.captureHeader(cellTexts(ths))
			return
		}
	}

	fields, hasID := n.rowFields(tr)
	switch {
	case len(fields) == 0:
		n.drop("empty")
	case n.rs.AppendIdentifier && !hasID:
		n.drop("no_identifier")
	default:
		n.rows = append(n.rows, fields)
	}
}

func (n *normalizer) skipReason(tr *goquery.Selection) string {
	for _, class := range n.rs.SkipClasses {
		if tr.HasClass(class) {
			return class
		}
	}
	for _, stat := range n.rs.SkipStats {
		if tr.Find(fmt.Sprintf("th[data-stat=%q]", stat)).Length() > 0 {
			return "summary"
		}
	}
	return ""
}

// captureHeader records a header row. Repeats are counted and resolved by the policy.
func (n *normalizer) captureHeader(h []string) {
	if n.header == nil {
		n.header = h
		return
	}

	n.repeated++
	logger.IncrCounter("headers.repeated")
	if !slices.Equal(h, n.header) {
		logger.Warn("repeated header differs from first", logger.Fields{
			"table":  n.rs.Name,
			"first":  strings.Join(n.header, ","),
			"repeat": strings.Join(h, ","),
		})
	}
	if n.rs.HeaderPolicy == HeaderLastWins {
		n.header = h
	}
}

// rowFields returns the row's rank (if any) followed by each cell's identifier
// (if requested and present) and text
func (n *normalizer) rowFields(tr *goquery.Selection) ([]string, bool) {
	fields := make([]string, 0)

	if n.rs.RankStat != "" {
		rank := tr.Find(fmt.Sprintf("th[scope=\"row\"][data-stat=%q]", n.rs.RankStat)).First()
		if rank.Length() > 0 {
			fields = append(fields, cellText(rank))
		}
	}

	hasID := false
	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		if n.rs.AppendIdentifier {
			if id, ok := td.Attr(identifierAttr); ok {
				fields = append(fields, id)
				hasID = true
			}
		}
		fields = append(fields, cellText(td))
	})

	return fields, hasID
}

func (n *normalizer) drop(reason string) {
	if n.dropped == nil {
		n.dropped = make(map[string]int)
	}
	n.dropped[reason]++
	logger.IncrCounter("rows.dropped." + reason)
}

func (n *normalizer) build() (*table.Table, error) {
	if len(n.header) == 0 {
		return nil, fmt.Errorf("%s: %w", n.rs.Name, ErrNoHeader)
	}

	header := slices.Clone(n.header)
	if n.rs.AppendIdentifier {
		idx := slices.Index(header, NameColumn)
		if idx < 0 {
			return nil, fmt.Errorf("%s: %w", n.rs.Name, ErrNoNameColumn)
		}
		header = slices.Insert(header, idx, IdentifierColumn)
	}

	rows := make([][]string, 0, len(n.rows))
	for _, row := range n.rows {
		if len(row) != len(header) {
			n.drop("width")
			continue
		}
		rows = append(rows, row)
	}
	logger.AddCounter("rows.emitted", int64(len(rows)))

	logger.Debug("normalized table", logger.Fields{
		"table":            n.rs.Name,
		"rows":             len(rows),
		"dropped":          n.dropped,
		"repeated_headers": n.repeated,
	})

	return table.New(header, rows)
}

func cellTexts(sel *goquery.Selection) []string {
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, cellText(s))
	})
	return texts
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
