// Package provider defines the interface for episode sources
// and their implementations.
package provider

import (
	"context"

	"portal/internal/media"
)

// Page is one page of episodes.
type Page struct {
	Episodes []media.Episode `json:"episodes"`
	HasNext  bool            `json:"has_next"`
}

// Provider is the interface that episode sources must implement.
type Provider interface {
	// Episodes returns the given page (1-based) of episodes.
	Episodes(ctx context.Context, page int) (Page, error)
}

// VideoResolver finds the video to play for an episode.
type VideoResolver interface {
	// Resolve returns the video URL for the episode, or "" if none is known.
	Resolve(code string, season media.Season) string
}

// FormatDisplayTitle creates a one-line display string for an episode.
func FormatDisplayTitle(e media.Episode) string {
	title := e.Episode
	if e.Name != "" && e.Name != e.Episode {
		if title != "" {
			title += " · "
		}
		title += e.Name
	}
	if e.AirDate != "" {
		title += " (" + e.AirDate + ")"
	}
	return title
}
