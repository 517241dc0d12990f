package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validFileConfig() *FileConfig {
	return &FileConfig{
		ContractAddress: strPtr("SP000"),
		ContractName:    strPtr("crowdfund"),
	}
}

func TestResolve_Defaults(t *testing.T) {
	cfg, err := validFileConfig().Resolve()

	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultWalletURL, cfg.WalletURL)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 15, cfg.PollMaxAttempts)
}

func TestResolve_Overrides(t *testing.T) {
	fc := validFileConfig()
	fc.APIURL = strPtr("https://api.example.org")
	fc.RefreshInterval = strPtr("1m")
	fc.PollMaxAttempts = intPtr(30)

	cfg, err := fc.Resolve()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.org", cfg.APIURL)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30, cfg.PollMaxAttempts)
}

func TestResolve_InvalidDuration(t *testing.T) {
	fc := validFileConfig()
	fc.PollInterval = strPtr("soon")

	_, err := fc.Resolve()
	assert.ErrorContains(t, err, "poll_interval")
}

func TestResolve_MissingContract(t *testing.T) {
	_, err := (&FileConfig{}).Resolve()
	assert.ErrorContains(t, err, "contract_address")
}

func TestValidate_Bounds(t *testing.T) {
	cfg := &Config{
		APIURL:          DefaultAPIURL,
		ContractAddress: "SP000",
		ContractName:    "crowdfund",
		RefreshInterval: 500 * time.Millisecond,
		PollInterval:    DefaultPollInterval,
		PollMaxAttempts: 15,
	}
	assert.ErrorContains(t, cfg.Validate(), "refresh_interval")

	cfg.RefreshInterval = DefaultRefreshInterval
	cfg.PollMaxAttempts = 0
	assert.ErrorContains(t, cfg.Validate(), "poll_max_attempts")
}

func TestLoader_MissingExplicitFileIsAnError(t *testing.T) {
	loader := NewLoader("/nonexistent/fundctl.toml", nil)

	_, _, err := loader.Load()
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoader_ParsesAndMerges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fundctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url = "https://api.example.org"
contract_address = "SP000"
contract_name = "crowdfund"
poll_interval = "2s"
verbose = true
`), 0o644))

	loader := NewLoader(path, nil)
	fc, primary, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, path, primary)
	require.NotNil(t, fc.APIURL)
	assert.Equal(t, "https://api.example.org", *fc.APIURL)
	require.NotNil(t, fc.Verbose)
	assert.True(t, *fc.Verbose)

	cfg, err := fc.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fundctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url = "https://file.example.org"
contract_address = "SP000"
contract_name = "crowdfund"
`), 0o644))

	t.Setenv("FUNDCTL_API_URL", "https://env.example.org")

	loader := NewLoader(path, nil)
	fc, _, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, fc.APIURL)
	assert.Equal(t, "https://env.example.org", *fc.APIURL)
}
