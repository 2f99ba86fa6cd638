package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
	Store   StoreConfig   `mapstructure:"store"`
	Target  TargetConfig  `mapstructure:"target"`
	Launch  LaunchConfig  `mapstructure:"launch"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	DataDir string `mapstructure:"data_dir"`
	DBFile  string `mapstructure:"db_file"`
	LogFile string `mapstructure:"log_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// UIConfig selects how the launcher talks to the user.
// Mode is one of "auto", "native" or "console".
type UIConfig struct {
	Mode string `mapstructure:"mode"`
}

// StoreConfig selects the persisted key/value backend.
// Backend is one of "auto", "registry" or "sqlite".
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

// TargetConfig describes where the target application may be installed and
// under which identity the launcher persists its override.
type TargetConfig struct {
	Name          string        `mapstructure:"name"`
	AppID         string        `mapstructure:"app_id"`
	OverrideKey   string        `mapstructure:"override_key"`
	PrimaryKey    string        `mapstructure:"primary_key"`
	PrimaryValues []string      `mapstructure:"primary_values"`
	ExeNames      []string      `mapstructure:"exe_names"`
	InstallDirs   []InstallDir  `mapstructure:"install_dirs"`
	MachineKeys   []RegistryKey `mapstructure:"machine_keys"`
}

// InstallDir is a well-known install location: an environment variable that
// names a root directory plus a relative path to the executable.
type InstallDir struct {
	Root string `mapstructure:"root"`
	Path string `mapstructure:"path"`
}

// RegistryKey is a (subkey, value name) pair under HKEY_LOCAL_MACHINE.
type RegistryKey struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

// LaunchConfig controls repeat mode.
type LaunchConfig struct {
	Hidden bool `mapstructure:"hidden"`
	// Count overrides the count derived from the executable name when > 0.
	Count int `mapstructure:"count"`
}

// BatchConfig controls shortcut batch mode.
type BatchConfig struct {
	AppID         string `mapstructure:"app_id"`
	DirKey        string `mapstructure:"dir_key"`
	Extension     string `mapstructure:"extension"`
	CaseSensitive bool   `mapstructure:"case_sensitive"`
	MaxWorkers    int    `mapstructure:"max_workers"`
	Hidden        bool   `mapstructure:"hidden"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "qlaunch"))
	}
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("QLAUNCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.DataDir = expandPath(cfg.Paths.DataDir)
	cfg.Paths.DBFile = expandPath(cfg.Paths.DBFile)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)

	return &cfg, nil
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults are static; decoding them cannot fail.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	dataDir := defaultDataDir()

	v.SetDefault("paths.data_dir", dataDir)
	v.SetDefault("paths.db_file", filepath.Join(dataDir, "settings.db"))
	v.SetDefault("paths.log_file", filepath.Join(dataDir, "qlaunch.log"))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.color", "auto")

	v.SetDefault("ui.mode", "auto")
	v.SetDefault("store.backend", "auto")

	v.SetDefault("target.name", "WeChat")
	v.SetDefault("target.app_id", `QuickLauncher\Weixin`)
	v.SetDefault("target.override_key", "UserSpecifiedPath")
	v.SetDefault("target.primary_key", `Software\Tencent\Weixin`)
	v.SetDefault("target.primary_values", []string{"InstallPath", "Path"})
	v.SetDefault("target.exe_names", []string{"WeChat.exe", "weixin.exe"})
	v.SetDefault("target.install_dirs", []map[string]interface{}{
		{"root": "ProgramFiles", "path": `Tencent\WeChat\WeChat.exe`},
		{"root": "ProgramFiles(x86)", "path": `Tencent\WeChat\WeChat.exe`},
		{"root": "ProgramFiles", "path": `Tencent\Weixin\Weixin.exe`},
		{"root": "ProgramFiles(x86)", "path": `Tencent\Weixin\Weixin.exe`},
		{"root": "LOCALAPPDATA", "path": `Programs\Tencent\Weixin\Weixin.exe`},
	})
	v.SetDefault("target.machine_keys", []map[string]interface{}{
		{"key": `SOFTWARE\Tencent\WeChat`, "value": "InstallPath"},
		{"key": `SOFTWARE\WOW6432Node\Tencent\WeChat`, "value": "InstallPath"},
		{"key": `SOFTWARE\Tencent\Weixin`, "value": "InstallPath"},
		{"key": `SOFTWARE\WOW6432Node\Tencent\Weixin`, "value": "InstallPath"},
	})

	v.SetDefault("launch.hidden", true)
	v.SetDefault("launch.count", 0)

	v.SetDefault("batch.app_id", "QuickLauncher")
	v.SetDefault("batch.dir_key", "ShortcutDir")
	v.SetDefault("batch.extension", ".lnk")
	v.SetDefault("batch.case_sensitive", false)
	v.SetDefault("batch.max_workers", 0)
	v.SetDefault("batch.hidden", true)
}

func defaultDataDir() string {
	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		return filepath.Join(configDir, "qlaunch")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".qlaunch")
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	return os.ExpandEnv(path)
}
