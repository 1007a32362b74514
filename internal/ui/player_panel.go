package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portal/internal/assets"
)

// IdleCaption is shown under the placeholder while nothing plays.
const IdleCaption = "Aw, jeez, you gotta click the video, guys! I mean, it might be important or something!"

// SizeHint sizes the playback surface: Rows in the terminal panel, and
// Width x Height in pixels for the external player window.
type SizeHint struct {
	Rows   int
	Width  int
	Height int
}

// SizeFor returns the surface size for the form factor. Desktop layouts
// get the taller surface.
func SizeFor(desktop bool) SizeHint {
	if desktop {
		return SizeHint{Rows: 18, Width: 1280, Height: 600}
	}
	return SizeHint{Rows: 8, Width: 640, Height: 250}
}

// PlayerPanel is the two-state panel under the episode row.
// It is idle while PlayVideo is blank and playing otherwise.
type PlayerPanel struct {
	PlayVideo string
	Size      SizeHint
	Status    string // Player status line inside the surface, optional
	OnClose   func()
}

// Playing reports whether the panel is in the playing state.
func (p PlayerPanel) Playing() bool {
	return strings.TrimSpace(p.PlayVideo) != ""
}

// Close activates the close icon. It calls OnClose, with no arguments,
// only while playing; its effect is always to clear the selection.
func (p PlayerPanel) Close() {
	if p.Playing() && p.OnClose != nil {
		p.OnClose()
	}
}

// View renders the panel at the given outer width.
func (p PlayerPanel) View(width int) string {
	if width < 20 {
		width = 20
	}
	if p.Playing() {
		return p.playingView(width)
	}
	return p.idleView(width)
}

func (p PlayerPanel) idleView(width int) string {
	inner := width - IdleCardStyle.GetHorizontalFrameSize()

	caption := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Render(IdleCaption)

	body := lipgloss.JoinVertical(lipgloss.Center,
		strings.Join(assets.Placeholder.Art, "\n"),
		"",
		caption,
	)
	return IdleCardStyle.Width(inner + IdleCardStyle.GetHorizontalPadding()).Render(body)
}

func (p PlayerPanel) playingView(width int) string {
	inner := width - PlayingCardStyle.GetHorizontalFrameSize()

	closeIcon := CloseStyle.Render(strings.Join(assets.Portal.Art, "\n") + " x")
	topRow := lipgloss.PlaceHorizontal(inner, lipgloss.Right, closeIcon)

	rows := p.Size.Rows
	if rows < 3 {
		rows = 3
	}
	surface := VideoSurface{URL: p.PlayVideo, Size: p.Size, Status: p.Status}.View(inner, rows)

	return PlayingCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, topRow, surface))
}

// VideoSurface is the in-terminal stand-in for the video: the external
// player draws the picture, the surface shows what is playing.
type VideoSurface struct {
	URL    string
	Size   SizeHint
	Status string
}

// View renders the surface as a width x rows block.
func (v VideoSurface) View(width, rows int) string {
	lines := []string{"▶ now playing", v.URL}
	if v.Status != "" {
		lines = append(lines, "", v.Status)
	}
	return SurfaceStyle.
		Width(width).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}
