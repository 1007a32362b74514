// Package player launches external media players for the player panel.
// All player invocations use exec.CommandContext with explicit argument
// slices and put the URL after "--", so remote data is never parsed as a
// flag or by a shell. Players never share the terminal with the TUI.
package player

import (
	"context"
	"fmt"

	"portal/internal/httputil"
)

// Request describes one playback.
type Request struct {
	URL    string
	Title  string
	Width  int // Window size hint in pixels, 0 to let the player decide
	Height int
}

// Result is what a player reports once playback has ended.
type Result struct {
	Position float64 // Last playback position in seconds
	Duration float64 // Total duration in seconds, 0 when unknown
}

// Player is the interface for media player implementations.
type Player interface {
	// Play runs the player until it exits or ctx is cancelled.
	// Cancelling ctx is a normal way to stop playback and is not an error.
	Play(ctx context.Context, req Request) (Result, error)

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{} // Default to mpv
	}
}

func checkRequest(req Request) error {
	if err := httputil.ValidatePlayableURL(req.URL); err != nil {
		return fmt.Errorf("refusing to play: %w", err)
	}
	return nil
}

func geometry(req Request) string {
	if req.Width <= 0 || req.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", req.Width, req.Height)
}
