package scraper

import (
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/pfrederiksen/bbref/internal/award"
	"github.com/pfrederiksen/bbref/internal/logger"
)

func TestAwardVoting(t *testing.T) {
	server := newFixtureServer(t, map[string]string{
		"/awards/awards_1960.shtml": "awards_1960.html",
	})
	c := New(WithBaseURL(server.URL))

	tests := []struct {
		name       string
		code       string
		year       int
		wantHeader []string
		wantRows   [][]string
		wantErr    error
	}{
		{
			name:       "rendered per-league table",
			code:       "almvp",
			year:       1960,
			wantHeader: []string{"Rank", "Identifier", "Name", "Tm", "Vote Pts", "1st Place"},
			wantRows: [][]string{
				{"1", "marisro01", "Roger Maris", "NYY", "225.0", "8"},
				{"2", "mantlmi01", "Mickey Mantle", "NYY", "222.0", "10"},
			},
		},
		{
			name:       "combined-era table hidden in comment",
			code:       "nlcy",
			year:       1960,
			wantHeader: []string{"Rank", "Identifier", "Name", "Tm", "Vote Pts"},
			wantRows: [][]string{
				{"1", "lawve01", "Vern Law", "PIT", "8.0"},
				{"3", "spahnwa01", "Warren Spahn", "MLN", "4.0"},
			},
		},
		{
			name:    "table missing from page",
			code:    "nlmvp",
			year:    1960,
			wantErr: ErrTableNotFound,
		},
		{
			name:    "unknown award code",
			code:    "algg",
			year:    1960,
			wantErr: award.ErrUnrecognizedAward,
		},
		{
			name:    "award did not exist",
			code:    "alcy",
			year:    1950,
			wantErr: award.ErrUnsupportedYear,
		},
		{
			name:    "page missing",
			code:    "almvp",
			year:    1961,
			wantErr: ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := c.AwardVoting(tt.code, tt.year)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AwardVoting() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AwardVoting() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tbl.Header, tt.wantHeader) {
				t.Errorf("header = %v, want %v", tbl.Header, tt.wantHeader)
			}
			if !reflect.DeepEqual(tbl.Rows, tt.wantRows) {
				t.Errorf("rows = %v, want %v", tbl.Rows, tt.wantRows)
			}
		})
	}
}

type countingTransport struct{ n *int }

func (ct countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	*ct.n++
	return http.DefaultTransport.RoundTrip(r)
}

func TestAwardVoting_FailsBeforeFetch(t *testing.T) {
	requests := 0
	server := newFixtureServer(t, map[string]string{})
	c := New(WithBaseURL(server.URL), WithHTTPClient(&http.Client{Transport: countingTransport{&requests}}))

	if _, err := c.AwardVoting("bogus", 2000); err == nil {
		t.Fatal("AwardVoting() expected error for unknown code")
	}
	if requests != 0 {
		t.Errorf("made %d requests for an unknown award code, want 0", requests)
	}
}

func TestMVPHistory(t *testing.T) {
	server := newFixtureServer(t, map[string]string{
		"/awards/mvp.shtml": "mvp.html",
	})
	c := New(WithBaseURL(server.URL))

	tbl, err := c.MVPHistory()
	if err != nil {
		t.Fatalf("MVPHistory() error: %v", err)
	}

	wantHeader := []string{"Year", "Lg", "Identifier", "Name", "Tm", "WAR"}
	if !reflect.DeepEqual(tbl.Header, wantHeader) {
		t.Errorf("header = %v, want %v", tbl.Header, wantHeader)
	}

	wantRows := [][]string{
		{"2019", "AL", "troutmi01", "Mike Trout", "LAA", "8.3"},
		{"2018", "AL", "bettsmo01", "Mookie Betts", "BOS", "10.7"},
		{"1931", "AL", "grovele01", "Lefty Grove", "PHA", "10.4"},
	}
	if !reflect.DeepEqual(tbl.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", tbl.Rows, wantRows)
	}

	// Dropping the already-removed column again must be harmless.
	if again := tbl.DropColumns(VotingColumn); !reflect.DeepEqual(again, tbl) {
		t.Errorf("DropColumns(Voting) on history changed table")
	}
}

func TestCyYoungHistory(t *testing.T) {
	server := newFixtureServer(t, map[string]string{
		"/awards/cya.shtml": "cya.html",
	})
	c := New(WithBaseURL(server.URL))

	logger.ResetMetrics()
	tbl, err := c.CyYoungHistory()
	if err != nil {
		t.Fatalf("CyYoungHistory() error: %v", err)
	}

	wantHeader := []string{"Year", "Lg", "Identifier", "Name", "Tm", "W", "ERA"}
	if !reflect.DeepEqual(tbl.Header, wantHeader) {
		t.Errorf("header = %v, want %v", tbl.Header, wantHeader)
	}

	wantRows := [][]string{
		{"2019", "AL", "verlaju01", "Justin Verlander", "HOU", "21", "2.58"},
		{"1956", "ML", "newcodo01", "Don Newcombe", "BRO", "27", "3.06"},
	}
	if !reflect.DeepEqual(tbl.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", tbl.Rows, wantRows)
	}

	if tbl.Index(VotingColumn) >= 0 {
		t.Errorf("header still has %q column", VotingColumn)
	}
	if got := logger.Counter("rows.dropped.spacer"); got != 1 {
		t.Errorf("rows.dropped.spacer = %d, want 1", got)
	}
}

func TestAwardVoting_SkipsSpacerRows(t *testing.T) {
	server := newFixtureServer(t, map[string]string{
		"/awards/awards_1960.shtml": "awards_1960.html",
	})
	c := New(WithBaseURL(server.URL))

	logger.ResetMetrics()
	if _, err := c.AwardVoting("nlcy", 1960); err != nil {
		t.Fatalf("AwardVoting() error: %v", err)
	}

	counters := map[string]int64{
		"rows.dropped.spacer":        1,
		"rows.dropped.no_identifier": 1,
		"rows.emitted":               2,
	}
	for name, want := range counters {
		if got := logger.Counter(name); got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}
}

func TestCyYoungHistory_NotFound(t *testing.T) {
	server := newFixtureServer(t, map[string]string{
		// The MVP page has no "cya" table.
		"/awards/cya.shtml": "mvp.html",
	})
	c := New(WithBaseURL(server.URL))

	_, err := c.CyYoungHistory()
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("CyYoungHistory() error = %v, want ErrTableNotFound", err)
	}
}
