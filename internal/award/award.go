// Package award maps award codes and years to the voting table identifiers used
// on the awards pages. Identifiers changed across eras: Cy Young and Rookie of
// the Year voting was a single combined-league table before each award split by
// league, and neither award exists before its first season.
package award

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnrecognizedAward is returned for codes or kinds that name no known award
	ErrUnrecognizedAward = errors.New("unrecognized award")

	// ErrUnsupportedYear is returned when the award has no voting data for the year
	ErrUnsupportedYear = errors.New("unsupported year for award")
)

// Kind is the award being voted on
type Kind int

const (
	MVP Kind = iota + 1
	CyYoung
	RookieOfYear
)

// League selects the per-league table, or the combined table of the early eras
type League int

const (
	AL League = iota + 1
	NL
	Combined
)

const (
	firstMVPYear          = 1911
	firstCyYoungYear      = 1956
	firstLeagueCyYear     = 1967
	firstRookieYear       = 1947
	firstLeagueRookieYear = 1949
)

// Award is an award kind for one league
type Award struct {
	Kind   Kind
	League League
}

var codes = map[string]Award{
	"almvp": {MVP, AL},
	"nlmvp": {MVP, NL},
	"alcy":  {CyYoung, AL},
	"nlcy":  {CyYoung, NL},
	"alroy": {RookieOfYear, AL},
	"nlroy": {RookieOfYear, NL},
	"cy":    {CyYoung, Combined},
	"roy":   {RookieOfYear, Combined},
}

// Codes lists the accepted award codes with a short description, in display order
var Codes = [][2]string{
	{"almvp", "AL MVP"},
	{"nlmvp", "NL MVP"},
	{"alcy", "AL Cy Young"},
	{"nlcy", "NL Cy Young"},
	{"alroy", "AL Rookie of the Year"},
	{"nlroy", "NL Rookie of the Year"},
	{"cy", "Cy Young, 1956-1966 only"},
	{"roy", "Rookie of the Year, 1947-1948 only"},
}

// ParseCode converts a user-facing code such as "nlcy" into an Award
func ParseCode(code string) (Award, error) {
	a, ok := codes[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Award{}, fmt.Errorf("%w: %q", ErrUnrecognizedAward, code)
	}
	return a, nil
}

// Code returns the user-facing code for the award
func (a Award) Code() string {
	for code, award := range codes {
		if award == a {
			return code
		}
	}
	return ""
}

func (a Award) String() string {
	var kind string
	switch a.Kind {
	case MVP:
		kind = "MVP"
	case CyYoung:
		kind = "Cy Young"
	case RookieOfYear:
		kind = "Rookie of the Year"
	default:
		return "unknown award"
	}
	switch a.League {
	case AL:
		return "AL " + kind
	case NL:
		return "NL " + kind
	default:
		return kind
	}
}

// TableID returns the award's table identifier, ignoring era
func (a Award) TableID() string {
	var suffix string
	switch a.Kind {
	case MVP:
		suffix = "MVP_voting"
	case CyYoung:
		suffix = "CYA_voting"
	case RookieOfYear:
		suffix = "ROY_voting"
	default:
		return ""
	}
	return leaguePrefix(a.League) + "_" + suffix
}

func leaguePrefix(l League) string {
	switch l {
	case AL:
		return "AL"
	case NL:
		return "NL"
	default:
		return "ML"
	}
}

// Resolve returns the table identifier holding the award's voting for year.
//
// MVP tables never changed. Cy Young voting is per league from 1967, combined
// from 1956 to 1966, and absent before. Rookie of the Year is per league from
// 1949, combined in 1947 and 1948, and absent before.
func Resolve(a Award, year int) (string, error) {
	switch a.Kind {
	case MVP:
		if a.League == Combined {
			return "", fmt.Errorf("%w: combined-league MVP", ErrUnrecognizedAward)
		}
		if year < firstMVPYear {
			return "", unsupported(a, year)
		}
		return a.TableID(), nil

	case CyYoung:
		return resolveSplit(a, year, firstCyYoungYear, firstLeagueCyYear)

	case RookieOfYear:
		return resolveSplit(a, year, firstRookieYear, firstLeagueRookieYear)
	}

	return "", fmt.Errorf("%w: kind %d", ErrUnrecognizedAward, a.Kind)
}

// resolveSplit handles awards that began as one combined vote and later split by league
func resolveSplit(a Award, year, first, split int) (string, error) {
	combined := Award{Kind: a.Kind, League: Combined}

	switch {
	case year < first:
		return "", unsupported(a, year)
	case year < split:
		return combined.TableID(), nil
	case a.League == Combined:
		return "", unsupported(a, year)
	default:
		return a.TableID(), nil
	}
}

func unsupported(a Award, year int) error {
	return fmt.Errorf("%w: no %s data for %d", ErrUnsupportedYear, a, year)
}

// ResolveCode parses code and resolves it for year, failing fast on unknown codes
func ResolveCode(code string, year int) (string, error) {
	a, err := ParseCode(code)
	if err != nil {
		return "", err
	}
	return Resolve(a, year)
}
