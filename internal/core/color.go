package core

import (
	"fmt"
	"strings"
)

// Color is the foreground of a screen cell. The TUI maps each value to an
// ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

var colorNames = [...]string{
	ColorDefault:      "default",
	ColorRed:          "red",
	ColorGreen:        "green",
	ColorYellow:       "yellow",
	ColorBlue:         "blue",
	ColorMagenta:      "magenta",
	ColorCyan:         "cyan",
	ColorWhite:        "white",
	ColorBrightRed:    "bright-red",
	ColorBrightGreen:  "bright-green",
	ColorBrightYellow: "bright-yellow",
	ColorBrightCyan:   "bright-cyan",
	ColorOrange:       "orange",
	ColorGray:         "gray",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ParseColor looks up a color by name. Matching ignores case, and "_"
// or a space may stand in for "-". "grey" is accepted for gray.
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "-", " ", "-").Replace(n)
	if n == "grey" {
		return ColorGray, nil
	}
	for i, cn := range colorNames {
		if cn == n {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q", name)
}
