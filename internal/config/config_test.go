package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
telegram:
  bot_token: "123:abc"
platform:
  base_url: "https://api.example.com"
  asset_base_url: "https://cdn.example.com"
admins:
  - 111
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "rentadmin", cfg.App.Name)
	assert.Equal(t, 10*time.Second, cfg.Platform.RequestTimeout())
	assert.Equal(t, "https://cdn.example.com/", cfg.Platform.AssetBaseURL)
	assert.Equal(t, 10, cfg.Bot.PaginationSize)
	assert.Equal(t, 20, cfg.Bot.RateLimitMessages)
	assert.Equal(t, 60, cfg.Bot.RateLimitWindow)
	assert.EqualValues(t, 10*1024*1024, cfg.Bot.MaxUploadBytes)
	assert.Equal(t, 5*time.Minute, cfg.Bot.RefreshInterval())
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "456:def")

	cfg, err := Load(writeConfig(t, `
telegram:
  bot_token: "${TEST_BOT_TOKEN}"
platform:
  base_url: "https://api.example.com"
  asset_base_url: "https://cdn.example.com/"
admins:
  - 111
`))
	require.NoError(t, err)
	assert.Equal(t, "456:def", cfg.Telegram.BotToken)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"MissingToken",
			`
platform:
  base_url: "https://api.example.com"
  asset_base_url: "https://cdn.example.com"
admins: [111]
`,
			"bot token",
		},
		{
			"MissingBaseURL",
			`
telegram:
  bot_token: "123:abc"
platform:
  asset_base_url: "https://cdn.example.com"
admins: [111]
`,
			"base_url",
		},
		{
			"MissingAssetBase",
			`
telegram:
  bot_token: "123:abc"
platform:
  base_url: "https://api.example.com"
admins: [111]
`,
			"asset_base_url",
		},
		{
			"NoAdmins",
			`
telegram:
  bot_token: "123:abc"
platform:
  base_url: "https://api.example.com"
  asset_base_url: "https://cdn.example.com"
`,
			"admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
telegram:
  bot_token: "123:abc"
platform:
  base_url: "https://api.example.com"
  asset_base_url: "https://cdn.example.com/"
  request_timeout_seconds: 3
bot:
  pagination_size: 25
  refresh_interval_minutes: 1
admins: [111, 222]
`))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.Platform.RequestTimeout())
	assert.Equal(t, 25, cfg.Bot.PaginationSize)
	assert.Equal(t, time.Minute, cfg.Bot.RefreshInterval())
	assert.Equal(t, []int64{111, 222}, cfg.Admins)
}
