package scraper

import (
	"errors"
	"fmt"

	"github.com/pfrederiksen/bbref/internal/award"
	"github.com/pfrederiksen/bbref/internal/table"
)

// VotingColumn is dropped from the winner history tables
const VotingColumn = "Voting"

// AwardVoting returns the voting results for an award code (see award.Codes) and season
func (c *Client) AwardVoting(code string, year int) (*table.Table, error) {
	tableID, err := award.ResolveCode(code, year)
	if err != nil {
		return nil, err
	}

	sel, err := c.locate(c.AwardsURL(year), ByID(tableID), tableID)
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, fmt.Errorf("no voting data for %s in %d: %w", code, year, err)
		}
		return nil, err
	}

	return Normalize(sel, votingRows(tableID))
}

// MVPHistory returns every MVP winner with their statistics
func (c *Client) MVPHistory() (*table.Table, error) {
	return c.winnerHistory(c.MVPHistoryURL(), "mvp")
}

// CyYoungHistory returns every Cy Young winner with their statistics
func (c *Client) CyYoungHistory() (*table.Table, error) {
	return c.winnerHistory(c.CyYoungHistoryURL(), "cya")
}

func (c *Client) winnerHistory(pageURL, tableID string) (*table.Table, error) {
	sel, err := c.locate(pageURL, ByID(tableID), tableID)
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, fmt.Errorf("no winner history in %s: %w", tableID, err)
		}
		return nil, err
	}

	tbl, err := Normalize(sel, historyRows(tableID))
	if err != nil {
		return nil, err
	}
	return tbl.DropColumns(VotingColumn), nil
}

func votingRows(tableID string) RowSpec {
	return RowSpec{
		Name:             tableID,
		RankStat:         "rank",
		AppendIdentifier: true,
		SkipClasses:      []string{"spacer"},
	}
}

func historyRows(tableID string) RowSpec {
	return RowSpec{
		Name:             tableID,
		RankStat:         "year_ID",
		AppendIdentifier: true,
		SkipClasses:      []string{"spacer"},
	}
}
