package ui

import (
	"portal/internal/episodes"
	"portal/internal/media"
	"portal/internal/player"
)

// Custom tea.Msg types for the screen

// stateMsg carries a view-model snapshot into the update loop.
type stateMsg episodes.State

// loadErrMsg reports a failed page load.
type loadErrMsg struct {
	Err error
}

// fadeDoneMsg ends the panel's cross-fade frame.
type fadeDoneMsg struct{}

// playbackEndedMsg reports that an external player exited.
type playbackEndedMsg struct {
	Session int
	Episode media.Episode
	URL     string
	Result  player.Result
	Err     error
}
