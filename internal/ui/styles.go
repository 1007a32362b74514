package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette, loosely after the show: portal green on near-black.
var (
	colorPrimary   = lipgloss.Color("#1B1F24")
	colorSecondary = lipgloss.Color("#2A3038")
	colorText      = lipgloss.Color("#E8E8E8")
	colorPortal    = lipgloss.Color("#39FF14")
	colorMuted     = lipgloss.Color("#8A8F98")
	colorError     = lipgloss.Color("#FF5F5F")
)

// tileWidth is the outer width of one episode tile.
const tileWidth = 17

// UI styles definitions
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Background(colorPortal).
			PaddingLeft(2).
			PaddingRight(2)

	TileStyle = lipgloss.NewStyle().
			Width(tileWidth).
			Padding(0, 1).
			Align(lipgloss.Center).
			Border(lipgloss.HiddenBorder())

	FocusedTileStyle = TileStyle.
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPortal)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	NameStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	IdleCardStyle = lipgloss.NewStyle().
			Background(colorSecondary).
			Foreground(colorText).
			Padding(1, 2).
			Margin(1, 1).
			Align(lipgloss.Center)

	PlayingCardStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(colorPortal).
				Margin(1, 1).
				Padding(0, 1)

	SurfaceStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Align(lipgloss.Center, lipgloss.Center)

	CloseStyle = lipgloss.NewStyle().
			Foreground(colorPortal).
			Bold(true)

	FadeStyle = lipgloss.NewStyle().Faint(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingLeft(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			PaddingLeft(1)
)
