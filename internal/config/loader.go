package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/fundctl/internal/output"
)

// ConfigFileName is the TOML file the loader searches for.
const ConfigFileName = "fundctl.toml"

// Loader finds, parses, and merges configuration files.
type Loader struct {
	configPath string // explicit --config path
	logger     *output.Logger
}

// NewLoader creates a Loader. configPath may be empty.
func NewLoader(configPath string, logger *output.Logger) *Loader {
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &Loader{
		configPath: configPath,
		logger:     logger,
	}
}

// DefaultHomeDir returns the per-user config directory.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fundctl"
	}
	return filepath.Join(home, ".fundctl")
}

// Load merges config files in priority order (explicit --config path, then
// ./fundctl.toml, then ~/.fundctl/fundctl.toml) and applies env overrides.
// Returns the raw file config and the highest-priority file path, if any.
func (l *Loader) Load() (*FileConfig, string, error) {
	// Collect candidates in order of increasing priority.
	var files []string

	homePath := filepath.Join(DefaultHomeDir(), ConfigFileName)
	if _, err := os.Stat(homePath); err == nil {
		files = append(files, homePath)
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		if abs, _ := filepath.Abs(ConfigFileName); abs != homePath {
			files = append(files, ConfigFileName)
		}
	}

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return nil, "", fmt.Errorf("config file not found: %s", l.configPath)
		}
		files = append(files, l.configPath)
	}

	merged := &FileConfig{}
	var primary string
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", file, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", file, err)
		}

		merge(merged, &cfg)
		primary = file
		l.logger.Debug("Loaded config file: %s", file)
	}

	applyEnv(merged)

	return merged, primary, nil
}

// merge overwrites dst fields with non-nil values from src.
func merge(dst, src *FileConfig) {
	if src.NoColor != nil {
		dst.NoColor = src.NoColor
	}
	if src.Verbose != nil {
		dst.Verbose = src.Verbose
	}
	if src.JSON != nil {
		dst.JSON = src.JSON
	}
	if src.APIURL != nil {
		dst.APIURL = src.APIURL
	}
	if src.WalletURL != nil {
		dst.WalletURL = src.WalletURL
	}
	if src.ContractAddress != nil {
		dst.ContractAddress = src.ContractAddress
	}
	if src.ContractName != nil {
		dst.ContractName = src.ContractName
	}
	if src.RefreshInterval != nil {
		dst.RefreshInterval = src.RefreshInterval
	}
	if src.PollInterval != nil {
		dst.PollInterval = src.PollInterval
	}
	if src.PollMaxAttempts != nil {
		dst.PollMaxAttempts = src.PollMaxAttempts
	}
}

// applyEnv lets environment variables override file values.
func applyEnv(cfg *FileConfig) {
	if v := os.Getenv("FUNDCTL_API_URL"); v != "" {
		cfg.APIURL = &v
	}
	if v := os.Getenv("FUNDCTL_WALLET_URL"); v != "" {
		cfg.WalletURL = &v
	}
	if v := os.Getenv("FUNDCTL_CONTRACT_ADDRESS"); v != "" {
		cfg.ContractAddress = &v
	}
	if v := os.Getenv("FUNDCTL_CONTRACT_NAME"); v != "" {
		cfg.ContractName = &v
	}
}
