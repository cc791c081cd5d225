package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TASKFLOW_STORAGE
const EnvPrefix = "TASKFLOW"

// Override keys shared by flags and environment variables
const (
	KeyConfig   = "config"
	KeyStorage  = "storage"
	KeyDBPath   = "db_path"
	KeyLogLevel = "log_level"
)

// NewViper returns a viper instance reading TASKFLOW_* variables
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{KeyConfig, KeyStorage, KeyDBPath, KeyLogLevel} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load resolves the config path from v, loads the file and applies every
// value set in v on top of it
func Load(v *viper.Viper) (Config, error) {
	path := v.GetString(KeyConfig)
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Default(), err
		}
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		return cfg, err
	}
	return ApplyOverrides(cfg, v, filepath.Dir(path)), nil
}

// ApplyOverrides copies explicitly set storage, path and log level values
// from v into cfg
func ApplyOverrides(cfg Config, v *viper.Viper, dir string) Config {
	storageChanged := false
	if v.IsSet(KeyStorage) {
		if s := strings.ToLower(strings.TrimSpace(v.GetString(KeyStorage))); s != "" && s != cfg.Storage {
			cfg.Storage = s
			storageChanged = true
		}
	}
	if v.IsSet(KeyDBPath) && v.GetString(KeyDBPath) != "" {
		cfg.DBPath = v.GetString(KeyDBPath)
	} else if storageChanged {
		cfg.DBPath = DefaultStoragePath(dir, cfg.Storage)
	}
	if v.IsSet(KeyLogLevel) && v.GetString(KeyLogLevel) != "" {
		cfg.LogLevel = v.GetString(KeyLogLevel)
	}
	return cfg
}
