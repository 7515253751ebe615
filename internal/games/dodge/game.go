// Package dodge implements Dodge the Blocks: move left and right to avoid
// falling blocks. A single hit ends the run; blocks that fall past score.
package dodge

import (
	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/games/falling"
	"github.com/vovakirdan/drop-arcade/internal/registry"
)

// ID is the registry and score-storage key.
const ID = "dodge"

var variant = &falling.Variant{
	ID: ID,
	Theme: falling.Theme{
		Player: falling.Glyph{Rune: '▀', Color: core.ColorBrightCyan},
		Classes: map[string]falling.Glyph{
			"block": {Rune: '▓', Color: core.ColorOrange},
		},
		Start:       "←/→ move  |  Space/Enter to start",
		BorderColor: core.ColorGray,
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

// New creates a new Dodge the Blocks game instance.
func New() *falling.Game {
	return variant.New()
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
