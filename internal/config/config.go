/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	applog "cardesigner/internal/log"
)

// AppConfig is the user-editable configuration persisted in the user scope,
// as YAML by default or as TOML when the file name ends in ".toml".
// Environment variables are read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	Source bool   `yaml:"source" toml:"source"`
	File   string `yaml:"file" toml:"file"`
}

// CanvasConfig is the surface the card is laid out on.
type CanvasConfig struct {
	Width   float32 `yaml:"width" toml:"width"`
	Padding float32 `yaml:"padding" toml:"padding"`
	// Font is an optional TTF/OTF file used to measure text. Empty means
	// the built-in bitmap face.
	Font string `yaml:"font" toml:"font"`
}

type LibraryConfig struct {
	// Path of the sqlite database holding saved cards. Empty means the
	// default next to the config file.
	Path string `yaml:"path" toml:"path"`
}

type ExportConfig struct {
	Format string `yaml:"format" toml:"format"` // "svg" | "png" | "pdf"
	Badges bool   `yaml:"badges" toml:"badges"`
}

// PeersConfig adjusts the element peer registry at startup. Bind maps a card
// type name to a peer variant name; Unbind drops the binding of a type so
// its elements get the generic peer.
type PeersConfig struct {
	Bind   map[string]string `yaml:"bind" toml:"bind"`
	Unbind []string          `yaml:"unbind" toml:"unbind"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" toml:"config_version"`
	Logging       LoggingConfig `yaml:"logging" toml:"logging"`
	Canvas        CanvasConfig  `yaml:"canvas" toml:"canvas"`
	Library       LibraryConfig `yaml:"library" toml:"library"`
	Export        ExportConfig  `yaml:"export" toml:"export"`
	Peers         PeersConfig   `yaml:"peers" toml:"peers"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
		Canvas:        CanvasConfig{Width: 400, Padding: 15},
		Export:        ExportConfig{Format: "svg", Badges: true},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile    = "CARDD_CONFIG"
	EnvCanvasWidth   = "CARDD_CANVAS_WIDTH"
	EnvCanvasPadding = "CARDD_CANVAS_PADDING"
	EnvCanvasFont    = "CARDD_CANVAS_FONT"
	EnvLibraryPath   = "CARDD_LIBRARY_PATH"
	EnvExportFormat  = "CARDD_EXPORT_FORMAT"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "CARDD_LOG_LEVEL"
	EnvLogFormat = "CARDD_LOG_FORMAT"
	EnvLogSource = "CARDD_LOG_SOURCE"
	EnvLogFile   = "CARDD_LOG_FILE"
)

// ConfigPath returns the config file path: CARDD_CONFIG when set, the
// per-user config file otherwise.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "CardDesigner")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "CardDesigner")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "cardesigner")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// LibraryPath returns the configured library database path, defaulting to
// library.db next to the config file.
func (c AppConfig) LibraryPath() (string, error) {
	if c.Library.Path != "" {
		return c.Library.Path, nil
	}
	p, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(p), "library.db"), nil
}

// LogOptions maps the logging section to logger options.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file yields the
// defaults; a malformed one is an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		var fileCfg AppConfig
		if err := decode(path, data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg to the user config file.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path, as TOML when the path ends in ".toml".
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := encode(path, cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func isTOML(path string) bool { return strings.EqualFold(filepath.Ext(path), ".toml") }

func decode(path string, data []byte, out *AppConfig) error {
	if isTOML(path) {
		return toml.Unmarshal(data, out)
	}
	return yaml.Unmarshal(data, out)
}

func encode(path string, cfg AppConfig) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(cfg)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	// canvas
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Padding > 0 {
		dst.Canvas.Padding = src.Canvas.Padding
	}
	if strings.TrimSpace(src.Canvas.Font) != "" {
		dst.Canvas.Font = strings.TrimSpace(src.Canvas.Font)
	}
	if strings.TrimSpace(src.Library.Path) != "" {
		dst.Library.Path = strings.TrimSpace(src.Library.Path)
	}
	if strings.TrimSpace(src.Export.Format) != "" {
		dst.Export.Format = strings.ToLower(strings.TrimSpace(src.Export.Format))
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Export.Badges = src.Export.Badges
	if len(src.Peers.Bind) > 0 {
		dst.Peers.Bind = src.Peers.Bind
	}
	if len(src.Peers.Unbind) > 0 {
		dst.Peers.Unbind = src.Peers.Unbind
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvCanvasWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Canvas.Width = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasPadding)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			cfg.Canvas.Padding = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasFont)); v != "" {
		cfg.Canvas.Font = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLibraryPath)); v != "" {
		cfg.Library.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportFormat)); v != "" {
		cfg.Export.Format = strings.ToLower(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"canvas.width":   EnvCanvasWidth,
		"canvas.padding": EnvCanvasPadding,
		"canvas.font":    EnvCanvasFont,
		"library.path":   EnvLibraryPath,
		"export.format":  EnvExportFormat,
		"logging.level":  EnvLogLevel,
		"logging.format": EnvLogFormat,
		"logging.source": EnvLogSource,
		"logging.file":   EnvLogFile,
	}
	if env, ok := names[key]; ok && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
