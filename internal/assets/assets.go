// Package assets holds the static artwork drawn by the terminal UI.
// Each Resource is an opaque handle: a stable name plus the lines of art
// the renderer places on screen.
package assets

import "portal/internal/media"

// Resource is a handle to a static piece of artwork.
type Resource struct {
	Name string
	Art  []string
}

// Width returns the width in cells of the widest art line.
func (r Resource) Width() int {
	w := 0
	for _, line := range r.Art {
		if n := len([]rune(line)); n > w {
			w = n
		}
	}
	return w
}

var (
	season1 = Resource{Name: "season1", Art: []string{
		"  .-----.  ",
		" / o   o \\ ",
		"|    ^    |",
		" \\  ---  / ",
		"  '-----'  ",
		"   S · 1   ",
	}}
	season2 = Resource{Name: "season2", Art: []string{
		"  .-~~~-.  ",
		" / @   @ \\ ",
		"|    v    |",
		" \\  \\_/  / ",
		"  '-----'  ",
		"   S · 2   ",
	}}
	season3 = Resource{Name: "season3", Art: []string{
		"   _____   ",
		"  / . . \\  ",
		" |  (_)  | ",
		"  \\ ~~~ /  ",
		"   '---'   ",
		"   S · 3   ",
	}}
	season4 = Resource{Name: "season4", Art: []string{
		"  /\\___/\\  ",
		" ( o   o ) ",
		" (  =^=  ) ",
		"  ( --- )  ",
		"   '---'   ",
		"   S · 4   ",
	}}
	season5 = Resource{Name: "season5", Art: []string{
		"  .=====.  ",
		" | x   x | ",
		" |   o   | ",
		" |  ___  | ",
		"  '====='  ",
		"   S · 5   ",
	}}
	season6 = Resource{Name: "season6", Art: []string{
		"   .***.   ",
		"  * O O *  ",
		"  *  ~  *  ",
		"  * '-' *  ",
		"   '***'   ",
		"   S · 6   ",
	}}
	season7 = Resource{Name: "season7", Art: []string{
		"  {=====}  ",
		"  | ° ° |  ",
		"  |  <  |  ",
		"  | === |  ",
		"  {=====}  ",
		"   S · 7   ",
	}}
	rickface = Resource{Name: "rickface", Art: []string{
		"  /\\/\\/\\/\\ ",
		" /  o  O  \\",
		"|    __    |",
		" \\ ~~~~~~ /",
		"  '------' ",
		"    ???    ",
	}}
)

// Placeholder is drawn by the idle player panel.
var Placeholder = Resource{Name: "placeHolder", Art: []string{
	"   .-\"\"\"\"-.      .-\"\"\"\"-.   ",
	"  /  o  o  \\    /  O  O  \\  ",
	" |    __    |  |    ..    | ",
	"  \\  '--'  /    \\  ~~~~  /  ",
	"   '-.__.-'      '-.__.-'   ",
}}

// Portal is the close icon of the playing player panel.
var Portal = Resource{Name: "portal", Art: []string{
	"(@)",
}}

// ImageForSeason returns the tile artwork for a season. It is total: every
// season has its own image and anything else, SeasonUnknown included, gets
// the generic fallback.
func ImageForSeason(season media.Season) Resource {
	switch season {
	case media.Season1:
		return season1
	case media.Season2:
		return season2
	case media.Season3:
		return season3
	case media.Season4:
		return season4
	case media.Season5:
		return season5
	case media.Season6:
		return season6
	case media.Season7:
		return season7
	default:
		return rickface
	}
}

// Fallback is the handle ImageForSeason returns for SeasonUnknown.
func Fallback() Resource {
	return rickface
}
