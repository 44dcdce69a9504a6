package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML profile from path on top of Default.
// Fields the file omits keep their default values.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, fmt.Errorf("config: profile path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML profile on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode profile: %w", err)
	}
	return cfg, nil
}

// Marshal encodes cfg as a YAML profile.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// Settings are the CLI knobs that may come from the environment.
// Flags given on the command line take precedence.
type Settings struct {
	Profile   string `env:"DUNGEON_PROFILE"`
	Seed      int64  `env:"DUNGEON_SEED"`
	HistoryDB string `env:"DUNGEON_HISTORY_DB"`
	DumpPath  string `env:"DUNGEON_DUMP"`
	JSONPath  string `env:"DUNGEON_JSON"`
	HTMLDir   string `env:"DUNGEON_HTML_DIR"`
	NoColor   bool   `env:"DUNGEON_NO_COLOR"`
	Preview   bool   `env:"DUNGEON_PREVIEW" envDefault:"true"`
	Lang      string `env:"DUNGEON_LANG" envDefault:"en"`
	LocaleDir string `env:"DUNGEON_LOCALE_DIR" envDefault:"locales"`
}

// ParseEnv loads Settings from the process environment.
func ParseEnv() (Settings, error) {
	return parseSettings(env.Options{})
}

// ParseEnvMap loads Settings from an explicit variable map.
func ParseEnvMap(vars map[string]string) (Settings, error) {
	return parseSettings(env.Options{Environment: vars})
}

func parseSettings(opts env.Options) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
