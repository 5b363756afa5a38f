package domain

import "strings"

// Season is a cropping season label. The known labels below are canonical;
// anything else is kept verbatim (trimmed) and compared case-insensitively.
type Season string

// Known seasons. SeasonAny is the wildcard.
const (
	SeasonAny    Season = "Any"
	SeasonWinter Season = "Winter"
	SeasonSummer Season = "Summer"
	SeasonKharif Season = "Kharif"
	SeasonRabi   Season = "Rabi"
)

// KnownSeasons lists the enumerated seasons in display order.
var KnownSeasons = []Season{SeasonAny, SeasonWinter, SeasonSummer, SeasonKharif, SeasonRabi}

// ParseSeason maps a label to its canonical Season. Known labels match
// case-insensitively; unknown labels are returned trimmed.
func ParseSeason(label string) Season {
	label = strings.TrimSpace(label)
	for _, s := range KnownSeasons {
		if strings.EqualFold(label, string(s)) {
			return s
		}
	}
	return Season(label)
}

// IsAny reports whether s is the wildcard season.
func (s Season) IsAny() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(SeasonAny))
}

// Known reports whether s is one of the enumerated seasons.
func (s Season) Known() bool {
	for _, k := range KnownSeasons {
		if strings.EqualFold(strings.TrimSpace(string(s)), string(k)) {
			return true
		}
	}
	return false
}

// Matches reports whether two seasons are compatible: either side is the
// wildcard, or the labels are equal ignoring case.
func (s Season) Matches(other Season) bool {
	if s.IsAny() || other.IsAny() {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(string(s)), strings.TrimSpace(string(other)))
}

func (s Season) String() string {
	return string(s)
}
