package table

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		[]string{"Year", "Tm", "Name", "Voting", "G"},
		[][]string{
			{"1931", "PHA", "Lefty Grove", "78.0", "41"},
			{"1932", "PHA", "Jimmie Foxx", "75.0", "154"},
			{"1933", "PHA", "Jimmie Foxx", "74.0", "149"},
		},
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return tbl
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		rows    [][]string
		wantErr bool
	}{
		{
			name:   "matching widths",
			header: []string{"A", "B"},
			rows:   [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:   "no rows",
			header: []string{"A"},
			rows:   nil,
		},
		{
			name:    "short row",
			header:  []string{"A", "B"},
			rows:    [][]string{{"1", "2"}, {"3"}},
			wantErr: true,
		},
		{
			name:    "long row",
			header:  []string{"A"},
			rows:    [][]string{{"1", "2"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := New(tt.header, tt.rows)
			if tt.wantErr {
				if !errors.Is(err, ErrWidthMismatch) {
					t.Errorf("New() error = %v, want ErrWidthMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if tbl.Rows == nil {
				t.Error("New() Rows is nil, want empty slice")
			}
			for i, r := range tbl.Records() {
				if len(r.Values()) != len(tbl.Header) {
					t.Errorf("record %d has %d values, header has %d", i, len(r.Values()), len(tbl.Header))
				}
			}
		})
	}
}

func TestRecordGet(t *testing.T) {
	tbl := sampleTable(t)
	rec := tbl.Record(1)

	if got, ok := rec.Get("Name"); !ok || got != "Jimmie Foxx" {
		t.Errorf("Get(Name) = %q, %v; want Jimmie Foxx, true", got, ok)
	}
	if _, ok := rec.Get("Missing"); ok {
		t.Error("Get(Missing) ok = true, want false")
	}
	if !reflect.DeepEqual(rec.Columns(), tbl.Header) {
		t.Errorf("Columns() = %v, want %v", rec.Columns(), tbl.Header)
	}
}

func TestColumn(t *testing.T) {
	tbl := sampleTable(t)

	years, err := tbl.Column("Year")
	if err != nil {
		t.Fatalf("Column(Year) error: %v", err)
	}
	want := []string{"1931", "1932", "1933"}
	if !reflect.DeepEqual(years, want) {
		t.Errorf("Column(Year) = %v, want %v", years, want)
	}

	if _, err := tbl.Column("HR"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Column(HR) error = %v, want ErrUnknownColumn", err)
	}
}

func TestDropColumns(t *testing.T) {
	tbl := sampleTable(t)

	dropped := tbl.DropColumns("Voting")
	wantHeader := []string{"Year", "Tm", "Name", "G"}
	if !reflect.DeepEqual(dropped.Header, wantHeader) {
		t.Errorf("header = %v, want %v", dropped.Header, wantHeader)
	}
	for i, row := range dropped.Rows {
		if len(row) != len(wantHeader) {
			t.Errorf("row %d width = %d, want %d", i, len(row), len(wantHeader))
		}
	}
	if dropped.Rows[0][3] != "41" {
		t.Errorf("row 0 G = %q, want 41", dropped.Rows[0][3])
	}

	t.Run("idempotent", func(t *testing.T) {
		again := dropped.DropColumns("Voting")
		if !reflect.DeepEqual(again, dropped) {
			t.Errorf("second DropColumns changed table: %v", again)
		}
	})

	t.Run("does not mutate source", func(t *testing.T) {
		if len(tbl.Header) != 5 {
			t.Errorf("source header width = %d, want 5", len(tbl.Header))
		}
	})
}

func TestFilter(t *testing.T) {
	tbl := sampleTable(t)

	foxx := tbl.Filter(func(r Record) bool {
		name, _ := r.Get("Name")
		return name == "Jimmie Foxx"
	})
	if foxx.Len() != 2 {
		t.Errorf("Filter() returned %d rows, want 2", foxx.Len())
	}

	none := tbl.Filter(func(Record) bool { return false })
	if none.Len() != 0 {
		t.Errorf("Filter(false) returned %d rows, want 0", none.Len())
	}
}

func TestSummarize(t *testing.T) {
	tbl, err := New(
		[]string{"Year", "HR", "BA"},
		[][]string{
			{"1927", "60", ".356"},
			{"1928", "54", ".323"},
			{"1929", "46", ".345"},
			{"1930", "", ".359"},
			{"1931", "--", ".373"},
		},
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	s, err := tbl.Summarize("HR")
	if err != nil {
		t.Fatalf("Summarize(HR) error: %v", err)
	}
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Min != 46 || s.Max != 60 || s.Median != 54 {
		t.Errorf("min/median/max = %v/%v/%v, want 46/54/60", s.Min, s.Median, s.Max)
	}
	if math.Abs(s.Mean-53.333333) > 1e-4 {
		t.Errorf("Mean = %v, want ~53.33", s.Mean)
	}

	if _, err := tbl.Summarize("Tm"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Summarize(Tm) error = %v, want ErrUnknownColumn", err)
	}

	empty, _ := New([]string{"X"}, [][]string{{""}, {"n/a"}})
	if _, err := empty.Summarize("X"); !errors.Is(err, ErrNoNumericData) {
		t.Errorf("Summarize(X) error = %v, want ErrNoNumericData", err)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{".356", 0.356, true},
		{"1,234", 1234, true},
		{"85%", 85, true},
		{"", 0, false},
		{"--", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
