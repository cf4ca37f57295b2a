// Package config loads the game configuration from YAML with environment
// overrides.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"time"

	envconfig "github.com/JeremyLoy/config"
	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Title         string  `yaml:"title" config:"TILEQUEST_TITLE"`
	Width         int     `yaml:"width" config:"TILEQUEST_WIDTH"`
	Height        int     `yaml:"height" config:"TILEQUEST_HEIGHT"`
	LogLevel      string  `yaml:"log_level" config:"TILEQUEST_LOG_LEVEL"`
	SheetPath     string  `yaml:"sheet_path" config:"TILEQUEST_SHEET_PATH"`
	DBPath        string  `yaml:"db_path" config:"TILEQUEST_DB_PATH"`
	Mute          bool    `yaml:"mute" config:"TILEQUEST_MUTE"`
	Volume        float64 `yaml:"volume" config:"TILEQUEST_VOLUME"`
	StartLevel    string  `yaml:"start_level" config:"TILEQUEST_START_LEVEL"`
	SplashSeconds float64 `yaml:"splash_seconds" config:"TILEQUEST_SPLASH_SECONDS"`
	MoveMillis    int     `yaml:"move_millis" config:"TILEQUEST_MOVE_MILLIS"`
	MoveEase      string  `yaml:"move_ease" config:"TILEQUEST_MOVE_EASE"`
	CameraFollow  float64 `yaml:"camera_follow" config:"TILEQUEST_CAMERA_FOLLOW"`
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(eris.Wrap(err, "embedded default config is invalid"))
	}
	return cfg
}

// Load reads the configuration.
// Search order: customPath -> ~/.tilequest/config.yaml -> ./configs/tilequest.yaml -> embedded default.
// Environment overrides are applied on top and the result is validated.
func Load(customPath string) (Config, error) {
	cfg := Default()

	source := "embedded"
	if customPath != "" {
		if err := readInto(customPath, &cfg); err != nil {
			return cfg, err
		}
		source = customPath
	} else {
		for _, path := range []string{userConfigPath(), filepath.Join("configs", "tilequest.yaml")} {
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := readInto(path, &cfg); err != nil {
				return cfg, err
			}
			source = path
			break
		}
	}

	if err := envconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to apply environment overrides")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrapf(err, "invalid config from %s", source)
	}
	return cfg, nil
}

// readInto overlays the file at path on cfg, so missing keys keep their defaults.
func readInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return eris.Wrapf(err, "failed to parse config %s", path)
	}
	return nil
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilequest", "config.yaml")
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return eris.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, err := log.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return eris.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return eris.Errorf("volume must be within [0, 1], got %g", c.Volume)
	}
	if _, ok := appstate.ParseLevel(c.StartLevel); !ok {
		return eris.Errorf("unknown start level %q", c.StartLevel)
	}
	if c.SplashSeconds < 0 {
		return eris.Errorf("splash seconds cannot be negative")
	}
	if c.MoveMillis <= 0 {
		return eris.Errorf("move duration must be positive, got %dms", c.MoveMillis)
	}
	if _, err := animation.ParseEase(c.MoveEase); err != nil {
		return eris.Wrap(err, "invalid move easing")
	}
	if c.CameraFollow <= 0 || c.CameraFollow > 1 {
		return eris.Errorf("camera follow must be within (0, 1], got %g", c.CameraFollow)
	}
	return nil
}

// Level is the configured start level. Load has already validated it.
func (c Config) Level() appstate.LevelState {
	level, _ := appstate.ParseLevel(c.StartLevel)
	return level
}

func (c Config) MoveDuration() time.Duration {
	return time.Duration(c.MoveMillis) * time.Millisecond
}

func (c Config) Ease() animation.Ease {
	ease, err := animation.ParseEase(c.MoveEase)
	if err != nil {
		return animation.CircularInOut
	}
	return ease
}

func (c Config) SplashDuration() time.Duration {
	return time.Duration(c.SplashSeconds * float64(time.Second))
}
