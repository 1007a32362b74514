package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portal/internal/assets"
	"portal/internal/media"
)

// EpisodeItem is one tile of the episode row.
type EpisodeItem struct {
	Episode    media.Episode
	OnSelected func(url string)
}

// Activate forwards the episode's video URL to OnSelected, as is.
// An empty URL is forwarded too; validation is not the tile's job.
func (i EpisodeItem) Activate() {
	if i.OnSelected != nil {
		i.OnSelected(i.Episode.VideoURL)
	}
}

// View renders the season artwork above the episode label.
func (i EpisodeItem) View(focused bool) string {
	img := assets.ImageForSeason(i.Episode.Season)
	inner := tileWidth - 2

	lines := []string{
		lipgloss.NewStyle().Width(img.Width()).Render(strings.Join(img.Art, "\n")),
		"",
		LabelStyle.Render(truncate(i.Episode.Episode, inner)),
	}
	if name := i.Episode.Name; name != "" && name != i.Episode.Episode {
		lines = append(lines, NameStyle.Render(truncate(name, inner)))
	} else {
		lines = append(lines, "")
	}

	style := TileStyle
	if focused {
		style = FocusedTileStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
