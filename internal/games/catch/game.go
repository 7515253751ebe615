// Package catch implements Catch Drop: move the basket under falling fruit
// and stay clear of bombs. The run ends when the misses reach the limit.
package catch

import (
	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/games/falling"
	"github.com/vovakirdan/drop-arcade/internal/registry"
)

// ID is the registry and score-storage key.
const ID = "catch"

var variant = &falling.Variant{
	ID: ID,
	Theme: falling.Theme{
		Player: falling.Glyph{Rune: '▄', Color: core.ColorYellow},
		Classes: map[string]falling.Glyph{
			"fruit": {Rune: '●', Color: core.ColorBrightRed},
			"bomb":  {Rune: '✱', Color: core.ColorGray},
		},
		Start:       "←/→ move basket  |  Space/Enter to start",
		BorderColor: core.ColorGreen,
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

// New creates a new Catch Drop game instance.
func New() *falling.Game {
	return variant.New()
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
