// Package dash implements Meteor Dash: dodge meteors, collect orbs and
// power-ups, and burst sideways with a dash.
package dash

import (
	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/games/falling"
	"github.com/vovakirdan/drop-arcade/internal/registry"
)

// ID is the registry and score-storage key.
const ID = "dash"

var variant = &falling.Variant{
	ID: ID,
	Theme: falling.Theme{
		Player: falling.Glyph{Rune: '▲', Color: core.ColorBrightGreen},
		Classes: map[string]falling.Glyph{
			"meteor":    {Rune: '●', Color: core.ColorRed},
			"orb":       {Rune: '○', Color: core.ColorBrightYellow},
			"shield":    {Rune: '◆', Color: core.ColorBrightCyan},
			"hourglass": {Rune: '⧗', Color: core.ColorMagenta},
		},
		Start:       "←/→ move  Space dash  |  Enter to start",
		BorderColor: core.ColorBlue,
	},
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	variant.SetConfigPath(path)
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	variant.SetDifficultyPreset(preset)
}

// New creates a new Meteor Dash game instance.
func New() *falling.Game {
	return variant.New()
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
