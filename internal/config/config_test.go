package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.CORSAllowAll)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "token.json", cfg.GmailTokenFile)
	assert.Equal(t, "@every 15m", cfg.InboxSchedule)
	assert.True(t, cfg.SeedDemoAccount)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.False(t, cfg.AIEnabled())
	assert.False(t, cfg.InboxEnabled())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(
		"log_level: debug\nhttp_listen_addr: \":9000\"\ngmail_credentials_file: credentials.json\n"), 0o600))

	t.Setenv("HTTP_LISTEN_ADDR", ":7000")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SEED_DEMO_ACCOUNT", "false")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTPListenAddr, "environment wins over the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.SeedDemoAccount)
	assert.True(t, cfg.AIEnabled())
	assert.True(t, cfg.InboxEnabled())
}

func TestLoad_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: [unterminated\n"), 0o600))

	_, err := Load(viper.New())
	require.Error(t, err)
}
