package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/authdemo/internal/flagx"
	"github.com/dmitrijs2005/authdemo/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config. Zero values mean "not set"
// and leave the current Config value in place.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" toml:"api_base_url" yaml:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout" toml:"request_timeout" yaml:"request_timeout"`
	StorePath      string         `json:"store_path" toml:"store_path" yaml:"store_path"`
	Interface      string         `json:"interface" toml:"interface" yaml:"interface"`
	LogLevel       string         `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFile        string         `json:"log_file" toml:"log_file" yaml:"log_file"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
// Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err = toml.Decode(string(data), &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.StorePath != "" {
		cfg.StorePath = fc.StorePath
	}
	if fc.Interface != "" {
		cfg.Interface = fc.Interface
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
}
