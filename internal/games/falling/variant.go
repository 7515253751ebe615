package falling

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drop-arcade/internal/config"
)

var (
	loggerMu sync.RWMutex
	logger   = log.Default()
)

// SetLogger sets the logger used by games created from now on.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func currentLogger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Variant holds the load-time settings of one registered game: where its
// config comes from and which difficulty preset to apply.
type Variant struct {
	ID    string
	Theme Theme

	mu         sync.Mutex
	configPath string
	preset     config.DifficultyPreset
}

// SetConfigPath sets the custom config path for loading.
func (v *Variant) SetConfigPath(path string) {
	v.mu.Lock()
	v.configPath = path
	v.mu.Unlock()
}

// SetDifficultyPreset sets the difficulty preset. Unknown names reset it
// to the config default.
func (v *Variant) SetDifficultyPreset(preset string) {
	v.mu.Lock()
	v.preset = config.ParsePreset(preset)
	v.mu.Unlock()
}

// Load resolves the variant config and applies the preset.
func (v *Variant) Load() (config.VariantConfig, error) {
	v.mu.Lock()
	path, preset := v.configPath, v.preset
	v.mu.Unlock()

	cfg, err := config.Load(v.ID, path)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// New creates a game. A config that fails to load or validate is logged
// and replaced by the built-in defaults with the preset still applied.
func (v *Variant) New() *Game {
	l := currentLogger()

	cfg, err := v.Load()
	if err != nil {
		l.Warn("using default config", "game", v.ID, "err", err)
		cfg, _ = config.Default(v.ID)
		v.mu.Lock()
		config.ApplyPreset(&cfg, v.preset)
		v.mu.Unlock()
	}
	return New(cfg, v.Theme, WithLogger(l))
}
