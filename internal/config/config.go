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
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	applog "qdgraphics/internal/log"
)

// ExportConfig controls files written by the render and pdf commands.
type ExportConfig struct {
	// Standalone adds the XML prolog and SVG namespace to written .svg files.
	Standalone bool   `yaml:"standalone"`
	PDFTitle   string `yaml:"pdf_title"`
}

type SketchbookConfig struct {
	Driver string `yaml:"driver"` // "sqlite" | "postgres"
	Path   string `yaml:"path"`   // sqlite database file
	// The postgres DSN is a secret; it lives in the OS keychain or QDG_SKETCHBOOK_DSN.
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user configuration persisted as YAML in the user scope.
// Environment variables are read-only overrides applied at load time.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	Export        ExportConfig     `yaml:"export"`
	Sketchbook    SketchbookConfig `yaml:"sketchbook"`
	Logging       LoggingConfig    `yaml:"logging"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Export:        ExportConfig{Standalone: true, PDFTitle: "qdgraphics sketch"},
		Sketchbook:    SketchbookConfig{Driver: DriverSQLite, Path: defaultSketchbookPath()},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath       = "QDG_CONFIG"
	EnvStandalone       = "QDG_EXPORT_STANDALONE"
	EnvSketchbookDriver = "QDG_SKETCHBOOK_DRIVER"
	EnvSketchbookPath   = "QDG_SKETCHBOOK_PATH"
	EnvSketchbookDSN    = "QDG_SKETCHBOOK_DSN"
	EnvLogLevel         = "QDG_LOG_LEVEL"
	EnvLogFormat        = "QDG_LOG_FORMAT"
	EnvLogSource        = "QDG_LOG_SOURCE"
	EnvLogFile          = "QDG_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	base := userDir()
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

func userDir() string {
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(base, "qdgraphics")
	case "darwin":
		return filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "qdgraphics")
	default:
		return filepath.Join(os.Getenv("HOME"), ".config", "qdgraphics")
	}
}

func defaultSketchbookPath() string {
	return filepath.Join(userDir(), "sketchbook.sqlite")
}

// Load reads the user config file (if present), applies defaults and merges
// environment overrides. The postgres DSN is returned separately: from
// QDG_SKETCHBOOK_DSN when set, otherwise from the OS keyring.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	l := applog.WithComponent("config")
	if data, err := os.ReadFile(path); err == nil {
		// Start from defaults so keys missing in the file keep their defaults.
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			l.Warn("ignoring malformed config file", "path", path, "err", err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)

	dsn := strings.TrimSpace(os.Getenv(EnvSketchbookDSN))
	if dsn == "" && cfg.Sketchbook.Driver == DriverPostgres {
		dsn, err = secrets.Get(keyringService, keyringDSN)
		if err != nil {
			l.Debug("no sketchbook dsn in keyring", "err", err)
			dsn = ""
		}
	}
	return cfg, dsn, nil
}

// Save writes the user config YAML and stores a non-empty DSN in the keyring.
func Save(cfg AppConfig, dsn string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if dsn != "" {
		if err := secrets.Set(keyringService, keyringDSN, dsn); err != nil {
			return err
		}
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Export.Standalone = src.Export.Standalone
	if strings.TrimSpace(src.Export.PDFTitle) != "" {
		dst.Export.PDFTitle = src.Export.PDFTitle
	}
	if strings.TrimSpace(src.Sketchbook.Driver) != "" {
		dst.Sketchbook.Driver = strings.ToLower(strings.TrimSpace(src.Sketchbook.Driver))
	}
	if strings.TrimSpace(src.Sketchbook.Path) != "" {
		dst.Sketchbook.Path = strings.TrimSpace(src.Sketchbook.Path)
	}
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
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvStandalone)); v != "" {
		cfg.Export.Standalone = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSketchbookDriver)); v != "" {
		cfg.Sketchbook.Driver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSketchbookPath)); v != "" {
		cfg.Sketchbook.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// LogOptions maps the logging section onto logger options.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"export.standalone": EnvStandalone,
		"sketchbook.driver": EnvSketchbookDriver,
		"sketchbook.path":   EnvSketchbookPath,
		"sketchbook.dsn":    EnvSketchbookDSN,
		"logging.level":     EnvLogLevel,
		"logging.format":    EnvLogFormat,
		"logging.source":    EnvLogSource,
		"logging.file":      EnvLogFile,
	}
	env, ok := names[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
