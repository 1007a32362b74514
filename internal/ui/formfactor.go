package ui

import (
	"strings"

	"golang.org/x/term"
)

// desktopColumns is the terminal width from which "auto" means desktop.
const desktopColumns = 120

// ResolveDesktop turns a form-factor setting into the desktop flag.
// "desktop" and "compact" are taken as given; anything else inspects the
// terminal on fd once, treating wide terminals as desktop-class.
func ResolveDesktop(formFactor string, fd int) bool {
	switch strings.ToLower(formFactor) {
	case "desktop":
		return true
	case "compact":
		return false
	}

	if !term.IsTerminal(fd) {
		return false
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return false
	}
	return width >= desktopColumns
}
