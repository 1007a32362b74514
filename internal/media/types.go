// Package media defines shared types for the portal application.
package media

import (
	"strconv"
	"strings"
	"time"
)

// Season identifies which season an episode belongs to.
// The set of values is closed: Season1..Season7 plus SeasonUnknown.
type Season int

const (
	SeasonUnknown Season = iota
	Season1
	Season2
	Season3
	Season4
	Season5
	Season6
	Season7
)

// Seasons lists every value of the enumeration, SeasonUnknown last.
var Seasons = []Season{Season1, Season2, Season3, Season4, Season5, Season6, Season7, SeasonUnknown}

func (s Season) String() string {
	switch s {
	case Season1, Season2, Season3, Season4, Season5, Season6, Season7:
		return "SEASON_" + strconv.Itoa(int(s))
	default:
		return "UNKNOWN"
	}
}

// ParseSeason derives the season from an episode code such as "S03E07".
// Codes that don't parse, or name a season outside 1..7, yield SeasonUnknown.
func ParseSeason(code string) Season {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !strings.HasPrefix(code, "S") {
		return SeasonUnknown
	}

	digits := code[1:]
	if i := strings.IndexByte(digits, 'E'); i >= 0 {
		digits = digits[:i]
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < int(Season1) || n > int(Season7) {
		return SeasonUnknown
	}
	return Season(n)
}

// Episode is a single episode as delivered by a provider. Read-only once built.
type Episode struct {
	ID       int    // Provider-specific ID
	Name     string // Episode title, e.g. "Pilot"
	Episode  string // Display label, usually the code, e.g. "S01E01"
	Season   Season
	AirDate  string
	VideoURL string // Empty when no video is known for the episode
}

// HistoryEntry represents a single entry in the watch history.
type HistoryEntry struct {
	Code      string    // Episode code / label, unique per entry
	Name      string    // Episode title
	VideoURL  string    // URL that was played
	Position  float64   // Last playback position in seconds
	Duration  float64   // Total duration in seconds, 0 when unknown
	WatchedAt time.Time // When playback ended
}
