package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const fileName = "config.toml"

type Config struct {
	Dots   Dots   `toml:"dots"`
	Window Window `toml:"window"`
	Mirror Mirror `toml:"mirror"`
}

type Dots struct {
	Radius float32 `toml:"radius"`
}

type Window struct {
	Title  string  `toml:"title"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// Mirror controls the spectator feed served by a host.
type Mirror struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

func Default() Config {
	return Config{
		Dots:   Dots{Radius: 50},
		Window: Window{Title: "Dot World", Width: 1024, Height: 768},
		Mirror: Mirror{Enabled: false, Port: 8888, Advertise: true},
	}
}

// DefaultPath is config.toml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "dotworld", fileName), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error: the defaults are written there and returned.
func Load(path string) (Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		log.Printf("[CONFIG] No config at %s, writing defaults", path)
		if err := Write(path, conf); err != nil {
			return Config{}, err
		}
		return conf, nil
	}
	if err := conf.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

func Write(path string, conf Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Dots.Radius <= 0 {
		return fmt.Errorf("dots.radius must be positive, got %v", c.Dots.Radius)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.Mirror.Port < 1 || c.Mirror.Port > 65535 {
		return fmt.Errorf("mirror.port out of range: %d", c.Mirror.Port)
	}
	return nil
}
