package cli

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pfrederiksen/bbref/internal/table"
	"github.com/xuri/excelize/v2"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
	FormatXLSX OutputFormat = "xlsx"
)

// ErrOutputRequired is returned when a binary format has no output file
var ErrOutputRequired = errors.New("xlsx output requires --output")

// ParseFormat validates an output format name
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text', 'json', 'csv' or 'xlsx')", s)
}

// WriteTable writes the table in a text-based format
func WriteTable(w io.Writer, tbl *table.Table, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tbl)
	case FormatCSV:
		return writeCSV(w, tbl)
	case FormatText:
		return writeText(w, tbl)
	case FormatXLSX:
		return ErrOutputRequired
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the header and rows as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeCSV(w io.Writer, tbl *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(tbl.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

// writeText outputs the table as aligned columns
func writeText(w io.Writer, tbl *table.Table) error {
	if tbl.Len() == 0 {
		fmt.Fprintln(w, "No rows found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tbl.Header, "\t"))
	for _, row := range tbl.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d rows\n", tbl.Len())
	return nil
}

// WriteXLSX saves the table as a single-sheet workbook
func WriteXLSX(path, sheet string, tbl *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	write := func(rowIdx int, values []string) error {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := write(1, tbl.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range tbl.Rows {
		if err := write(i+2, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// cellValue stores numeric stats as numbers so spreadsheets can sort and sum them
func cellValue(s string) interface{} {
	if n, ok := numericValue(s); ok {
		return n
	}
	return s
}

// WriteSummaries outputs column summaries in a text-based format
func WriteSummaries(w io.Writer, summaries []table.Summary, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summaries)
	case FormatCSV:
		return writeCSV(w, SummaryTable(summaries))
	case FormatText:
		tbl := SummaryTable(summaries)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(tbl.Header, "\t"))
		for _, row := range tbl.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	case FormatXLSX:
		return ErrOutputRequired
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// SummaryTable lays summaries out one column per row, with values rounded to three places
func SummaryTable(summaries []table.Summary) *table.Table {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Column,
			strconv.Itoa(s.Count),
			formatStat(s.Mean),
			formatStat(s.Median),
			formatStat(s.Min),
			formatStat(s.Max),
			formatStat(s.StdDev),
		})
	}
	return &table.Table{
		Header: []string{"Column", "Count", "Mean", "Median", "Min", "Max", "StdDev"},
		Rows:   rows,
	}
}

func formatStat(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
