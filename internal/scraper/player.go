package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bbref/internal/logger"
	"github.com/pfrederiksen/bbref/internal/table"
)

// StatType selects batting or pitching game logs
type StatType string

const (
	// StatAuto picks pitching for pitchers and batting for everyone else
	StatAuto     StatType = ""
	StatBatting  StatType = "b"
	StatPitching StatType = "p"
)

const (
	YearColumn  = "Year"
	GamesColumn = "G"
)

// ErrNoPosition is returned when a profile page has no position summary
var ErrNoPosition = errors.New("no position on profile page")

var leadingYear = regexp.MustCompile(`^\d{4}`)

// ParseStatType accepts "b", "p", "batting", "pitching" or "" (auto)
func ParseStatType(s string) (StatType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StatAuto, nil
	case "b", "batting":
		return StatBatting, nil
	case "p", "pitching":
		return StatPitching, nil
	}
	return "", fmt.Errorf("invalid stat type: %q (must be 'b' or 'p')", s)
}

// StatTypeForPosition guesses the stat type from a profile's position text
func StatTypeForPosition(position string) StatType {
	if strings.Contains(position, "Pitcher") {
		return StatPitching
	}
	return StatBatting
}

// PlayerStats returns a player's season-by-season career statistics from the
// first stats table on their profile. Minor league, spacer and explanatory
// rows are skipped.
func (c *Client) PlayerStats(playerID string) (*table.Table, error) {
	if err := validatePlayerID(playerID); err != nil {
		return nil, err
	}

	sel, err := c.locate(c.PlayerURL(playerID), HasClass("stats_table"), "stats_table")
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, fmt.Errorf("no stats data for %s: %w", playerID, err)
		}
		return nil, err
	}

	return Normalize(sel, RowSpec{
		Name:        playerID + "/stats_table",
		RankStat:    "year_ID",
		SkipClasses: []string{"spacer", "minors_table"},
		SkipStats:   []string{"player_stats_summary_explain"},
	})
}

// CareerYears returns the seasons a player appeared in. When minGames is
// positive only seasons with more than minGames games are kept.
func (c *Client) CareerYears(playerID string, minGames int) ([]int, error) {
	stats, err := c.PlayerStats(playerID)
	if err != nil {
		return nil, err
	}
	return careerYears(stats, minGames)
}

// careerYears reads the Year column, skipping career total and average rows
// and collapsing the repeated year of multi-team seasons
func careerYears(stats *table.Table, minGames int) ([]int, error) {
	yearIdx := stats.Index(YearColumn)
	if yearIdx < 0 {
		return nil, fmt.Errorf("%w: %q", table.ErrUnknownColumn, YearColumn)
	}
	gamesIdx := -1
	if minGames > 0 {
		if gamesIdx = stats.Index(GamesColumn); gamesIdx < 0 {
			return nil, fmt.Errorf("%w: %q", table.ErrUnknownColumn, GamesColumn)
		}
	}

	years := make([]int, 0, stats.Len())
	for _, row := range stats.Rows {
		year, err := strconv.Atoi(leadingYear.FindString(row[yearIdx]))
		if err != nil {
			continue
		}
		if gamesIdx >= 0 {
			games, err := strconv.Atoi(strings.TrimSpace(row[gamesIdx]))
			if err != nil || games <= minGames {
				continue
			}
		}
		if len(years) > 0 && years[len(years)-1] == year {
			continue
		}
		years = append(years, year)
	}

	return years, nil
}

// Seasons keeps only the rows of a career stats table that belong to a season,
// dropping career totals and per-162-game averages
func Seasons(stats *table.Table) (*table.Table, error) {
	if stats.Index(YearColumn) < 0 {
		return nil, fmt.Errorf("%w: %q", table.ErrUnknownColumn, YearColumn)
	}
	return stats.Filter(func(r table.Record) bool {
		year, _ := r.Get(YearColumn)
		return leadingYear.MatchString(year)
	}), nil
}

// Position returns the descriptive paragraph at the top of a player's profile,
// e.g. "Position: Pitcher and Outfielder".
func (c *Client) Position(playerID string) (string, error) {
	if err := validatePlayerID(playerID); err != nil {
		return "", err
	}

	doc, err := c.fetch(c.PlayerURL(playerID))
	if err != nil {
		return "", err
	}
	return positionText(doc)
}

func positionText(doc *goquery.Document) (string, error) {
	p := doc.Find(`div[itemtype="https://schema.org/Person"]`).First().Find("p").First()
	if p.Length() == 0 {
		return "", ErrNoPosition
	}
	return strings.Join(strings.Fields(p.Text()), " "), nil
}

// GameLog returns a player's per-game statistics for one season. StatAuto
// reads the player's profile and picks pitching logs for pitchers; if the
// profile has no position, batting logs are used.
func (c *Client) GameLog(playerID string, year int, statType StatType) (*table.Table, error) {
	if err := validatePlayerID(playerID); err != nil {
		return nil, err
	}

	if statType == StatAuto {
		position, err := c.Position(playerID)
		switch {
		case errors.Is(err, ErrNoPosition):
			logger.Warn("no position on profile, defaulting to batting", logger.Fields{"player_id": playerID})
			statType = StatBatting
		case err != nil:
			return nil, fmt.Errorf("reading position: %w", err)
		default:
			statType = StatTypeForPosition(position)
		}
	}

	sel, err := c.locate(c.GameLogURL(playerID, statType, year), IDContains("gamelogs"), "gamelogs")
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, fmt.Errorf("no game log for %s in %d: %w", playerID, year, err)
		}
		return nil, err
	}

	return Normalize(sel, RowSpec{
		Name:           playerID + "/gamelogs",
		RankStat:       "ranker",
		SkipClasses:    []string{"spacer"},
		HeaderFromHead: true,
	})
}
