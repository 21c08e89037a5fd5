/*
Package config manages TOML config for the wordfuzz tools.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordfuzz/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the default config file name inside the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Query   QueryConfig   `toml:"query"`
	Compile CompileConfig `toml:"compile"`
	Server  ServerConfig  `toml:"server"`
}

// QueryConfig controls lookups against a compiled dictionary.
type QueryConfig struct {
	// MaxDistanceLimit clamps the distance IPC and interactive requests may
	// ask for. 0 disables clamping. Line mode never clamps.
	MaxDistanceLimit int `toml:"max_distance_limit"`
	// ResultLimit caps results per query. 0 is unlimited.
	ResultLimit    int  `toml:"result_limit"`
	VerifyChecksum bool `toml:"verify_checksum"`
}

// CompileConfig holds compiler options.
type CompileConfig struct {
	Verify        bool `toml:"verify"`
	WriteManifest bool `toml:"write_manifest"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxWordLen int `toml:"max_word_len"`
	// DefaultDistance answers requests that do not name a distance.
	DefaultDistance int `toml:"default_distance"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Query: QueryConfig{
			MaxDistanceLimit: 0,
			ResultLimit:      0,
			VerifyChecksum:   true,
		},
		Compile: CompileConfig{
			Verify:        false,
			WriteManifest: true,
		},
		Server: ServerConfig{
			MaxWordLen:      64,
			DefaultDistance: 1,
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pr.GetConfigPath(FileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordfuzz/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages well-typed keys from a file the typed decode rejected
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "query"); ok {
		extractQueryConfig(section, &config.Query)
	}
	if section, ok := utils.ExtractSection(tempConfig, "compile"); ok {
		extractCompileConfig(section, &config.Compile)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	return config, nil
}

func extractQueryConfig(data map[string]any, q *QueryConfig) {
	if val, ok := utils.ExtractInt64(data, "max_distance_limit"); ok {
		q.MaxDistanceLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "result_limit"); ok {
		q.ResultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "verify_checksum"); ok {
		q.VerifyChecksum = val
	}
}

func extractCompileConfig(data map[string]any, c *CompileConfig) {
	if val, ok := utils.ExtractBool(data, "verify"); ok {
		c.Verify = val
	}
	if val, ok := utils.ExtractBool(data, "write_manifest"); ok {
		c.WriteManifest = val
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		s.MaxWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_distance"); ok {
		s.DefaultDistance = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
