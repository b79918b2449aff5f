package domain

import "strings"

// TeamRecord is the normalized representation of one Formula 1 constructor,
// independent of which source produced it.
type TeamRecord struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Country       string            `json:"country"`
	LogoRef       string            `json:"logoRef"`
	AccentColor   string            `json:"accentColor"`
	FoundedYear   int               `json:"foundedYear"`
	Principal     string            `json:"principal"`
	PowerUnit     string            `json:"powerUnit"`
	Championships int               `json:"championships"`
	Wins          int               `json:"wins"`
	Podiums       int               `json:"podiums"`
	WebsiteURL    string            `json:"websiteUrl"`
	SocialLinks   map[string]string `json:"socialLinks,omitempty"`
	Drivers       []DriverRecord    `json:"drivers"`
}

// DriverRecord is the normalized representation of one driver. Its canonical
// home is the Drivers slice of exactly one TeamRecord.
type DriverRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Number      string `json:"number"`
	Nationality string `json:"nationality"`
	ImageRef    string `json:"imageRef"`
	Points      int    `json:"points"`
	Races       int    `json:"races"`
	Wins        int    `json:"wins"`
}

// FlatDriver is a driver copied out of its team for roster and standings
// views, with the team-identifying fields carried along.
type FlatDriver struct {
	DriverRecord
	DisplayNumber string `json:"displayNumber"`
	TeamID        string `json:"teamId"`
	TeamName      string `json:"teamName"`
	TeamColor     string `json:"teamColor"`
	TeamLogo      string `json:"teamLogo"`
}

// Slugify derives a stable id from a display name by lower-casing and
// hyphenating it.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

// DisplayNumber formats a driver number for display with a leading #.
func (d DriverRecord) DisplayNumber() string {
	if d.Number == "" {
		return ""
	}
	return "#" + strings.TrimPrefix(d.Number, "#")
}
