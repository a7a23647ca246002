package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidPlayerID is returned for empty player identifiers
var ErrInvalidPlayerID = errors.New("invalid player id")

// AwardsURL returns the voting results page for a season
func (c *Client) AwardsURL(year int) string {
	return fmt.Sprintf("%s/awards/awards_%d.shtml", c.baseURL, year)
}

// MVPHistoryURL returns the page listing every MVP winner
func (c *Client) MVPHistoryURL() string {
	return c.baseURL + "/awards/mvp.shtml"
}

// CyYoungHistoryURL returns the page listing every Cy Young winner
func (c *Client) CyYoungHistoryURL() string {
	return c.baseURL + "/awards/cya.shtml"
}

// PlayerURL returns a player's profile and career stats page.
// Profiles are grouped by the first letter of the id.
func (c *Client) PlayerURL(playerID string) string {
	return fmt.Sprintf("%s/players/%s/%s.shtml", c.baseURL, prefix(playerID, 1), playerID)
}

// GameLogURL returns a player's game log page for one season
func (c *Client) GameLogURL(playerID string, statType StatType, year int) string {
	params := url.Values{}
	params.Set("id", playerID)
	params.Set("t", string(statType))
	params.Set("year", strconv.Itoa(year))
	return fmt.Sprintf("%s/players/gl.fcgi?%s", c.baseURL, params.Encode())
}

// PlayerID guesses a player's site identifier from their name: the first five
// letters of the last name, the first two of the first name, and "01".
// The guess is not guaranteed to exist or to name the intended player.
func PlayerID(first, last string) string {
	return strings.ToLower(prefix(last, 5) + prefix(first, 2) + "01")
}

// prefix returns the first n runes of s, or all of s if it is shorter
func prefix(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func validatePlayerID(playerID string) error {
	if strings.TrimSpace(playerID) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPlayerID)
	}
	return nil
}
