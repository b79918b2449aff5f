package domain

import "strings"

// DefaultAccentColor is used for constructors missing from the lookup table.
const DefaultAccentColor = "#FF1801"

// accentColors maps constructor names to their livery hex color. Keys are
// lower-case; lookups trim whitespace and ignore case.
var accentColors = map[string]string{
	"red bull":        "#0600EF",
	"red bull racing": "#0600EF",
	"mercedes":        "#00D2BE",
	"ferrari":         "#DC0000",
	"mclaren":         "#FF8700",
	"alpine":          "#0090FF",
	"alpine f1 team":  "#0090FF",
	"aston martin":    "#006F62",
	"alphatauri":      "#2B4562",
	"rb f1 team":      "#6692FF",
	"alfa romeo":      "#900000",
	"sauber":          "#52E252",
	"haas":            "#B6BABD",
	"haas f1 team":    "#B6BABD",
	"williams":        "#005AFF",
}

// TeamAccentColor resolves the livery color for a constructor name. The key
// is whitespace-trimmed and case-insensitive; unrecognized names resolve to
// DefaultAccentColor.
func TeamAccentColor(name string) string {
	if color, ok := accentColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return color
	}
	return DefaultAccentColor
}
