package domain

import (
	"sort"
	"strings"
)

// FlattenDrivers copies every driver out of its team, carrying the
// team-identifying fields onto each row. Order follows the team order and,
// within a team, the roster order.
func FlattenDrivers(teams []TeamRecord) []FlatDriver {
	drivers := make([]FlatDriver, 0, len(teams)*2)
	for _, team := range teams {
		for _, d := range team.Drivers {
			drivers = append(drivers, FlatDriver{
				DriverRecord:  d,
				DisplayNumber: d.DisplayNumber(),
				TeamID:        team.ID,
				TeamName:      team.Name,
				TeamColor:     team.AccentColor,
				TeamLogo:      team.LogoRef,
			})
		}
	}
	return drivers
}

// DriverStandings returns the flattened drivers sorted by points descending,
// wins as tie-breaker, then name for a stable order.
func DriverStandings(teams []TeamRecord) []FlatDriver {
	standings := FlattenDrivers(teams)
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].Name < standings[j].Name
	})
	return standings
}

// ConstructorStandings returns the teams sorted by championships descending,
// then wins, then podiums, then name.
func ConstructorStandings(teams []TeamRecord) []TeamRecord {
	standings := make([]TeamRecord, len(teams))
	copy(standings, teams)
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Championships != standings[j].Championships {
			return standings[i].Championships > standings[j].Championships
		}
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		if standings[i].Podiums != standings[j].Podiums {
			return standings[i].Podiums > standings[j].Podiums
		}
		return standings[i].Name < standings[j].Name
	})
	return standings
}

// FilterTeams returns the teams matching a case-insensitive search query
// against team name, country, or any driver name. An empty query returns the
// input unchanged.
func FilterTeams(teams []TeamRecord, query string) []TeamRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return teams
	}

	matched := make([]TeamRecord, 0, len(teams))
	for _, team := range teams {
		if teamMatches(team, query) {
			matched = append(matched, team)
		}
	}
	return matched
}

func teamMatches(team TeamRecord, query string) bool {
	if strings.Contains(strings.ToLower(team.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(team.Country), query) {
		return true
	}
	for _, d := range team.Drivers {
		if strings.Contains(strings.ToLower(d.Name), query) {
			return true
		}
	}
	return false
}

// FindTeam locates a team by its slug id.
func FindTeam(teams []TeamRecord, id string) (TeamRecord, bool) {
	for _, team := range teams {
		if team.ID == id {
			return team, true
		}
	}
	return TeamRecord{}, false
}
