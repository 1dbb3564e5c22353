// Package config loads tada settings from defaults, yaml files and TADA_* env vars.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/view"
)

const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendMemory = "memory"

	dirName  = ".tada"
	fileName = "config.yaml"
)

type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	View       ViewConfig       `yaml:"view" mapstructure:"view"`
	UI         UIConfig         `yaml:"ui" mapstructure:"ui"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Controller ControllerConfig `yaml:"controller" mapstructure:"controller"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Path of the database (sqlite) or data file (json). Ignored for memory.
	Path string `yaml:"path" mapstructure:"path"`
}

// ViewConfig holds the projection settings the list starts with.
type ViewConfig struct {
	ShowCompleted bool   `yaml:"show_completed" mapstructure:"show_completed"`
	ShowPending   bool   `yaml:"show_pending" mapstructure:"show_pending"`
	Sort          string `yaml:"sort" mapstructure:"sort"`
}

type UIConfig struct {
	Theme string `yaml:"theme" mapstructure:"theme"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

type ControllerConfig struct {
	Serialize bool `yaml:"serialize" mapstructure:"serialize"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join("~", dirName, "tasks.db"),
		},
		View: ViewConfig{
			ShowCompleted: true,
			ShowPending:   true,
			Sort:          model.SortByName.String(),
		},
		UI:  UIConfig{Theme: "classic"},
		Log: LogConfig{Level: "warn"},
	}
}

// Load layers the global file, the project file, then TADA_* variables over
// the defaults. An explicit path replaces both files.
func Load(explicit string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	var files []string
	if explicit != "" {
		files = []string{explicit}
	} else {
		files = []string{GlobalPath(), ProjectPath()}
	}
	for _, p := range files {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) && explicit == "" {
				continue
			}
			return nil, fmt.Errorf("config %s: %w", p, err)
		}
		v.SetConfigFile(p)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("view.show_completed", d.View.ShowCompleted)
	v.SetDefault("view.show_pending", d.View.ShowPending)
	v.SetDefault("view.sort", d.View.Sort)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("controller.serialize", d.Controller.Serialize)
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite, BackendJSON, BackendMemory:
	default:
		return fmt.Errorf("store.backend: unknown backend %q (want sqlite, json or memory)", c.Store.Backend)
	}
	if c.Store.Backend != BackendMemory && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store.path: required for %s backend", c.Store.Backend)
	}
	if _, err := model.ParseSortOption(c.View.Sort); err != nil {
		return fmt.Errorf("view.sort: %w", err)
	}
	return nil
}

// ViewParams converts the view section into projection parameters.
func (c *Config) ViewParams() view.Params {
	sort, _ := model.ParseSortOption(c.View.Sort)
	return view.Params{
		ShowCompleted: c.View.ShowCompleted,
		ShowPending:   c.View.ShowPending,
		Sort:          sort,
	}
}

// StorePath expands a leading ~ in Store.Path.
func (c *Config) StorePath() (string, error) {
	p := c.Store.Path
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Write saves cfg as yaml at path, creating the directory.
func Write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	header := "# tada configuration\n# backend: sqlite | json | memory; sort: name | status | id\n"
	if err := os.WriteFile(path, append([]byte(header), b...), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// GlobalPath returns ~/.tada/config.yaml, or "" without a home directory.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dirName, fileName)
}

// ProjectPath returns ./.tada/config.yaml, or "" without a working directory.
func ProjectPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, dirName, fileName)
}
