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
	path := filepath.Join(t.TempDir(), "cardfilter.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
timing:
  debounce: 500ms
  dwell: 1s
selectors:
  card: ".card"
  noise:
    - ".ad"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 500*time.Millisecond, cfg.Timing.Debounce)
		assert.Equal(t, time.Second, cfg.Timing.Dwell)
		assert.Equal(t, ".card", cfg.Selectors.Card)
		assert.Equal(t, []string{".ad"}, cfg.Selectors.Noise)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "filtered_keywords", cfg.Storage.KeywordsKey)
		assert.Equal(t, "blocked_users", cfg.Storage.AuthorsKey)
		assert.Equal(t, time.Second, cfg.Timing.InitialDelay)
		assert.Equal(t, 300*time.Millisecond, cfg.Timing.Debounce)
		assert.Equal(t, 400*time.Millisecond, cfg.Timing.Dwell)
		assert.Equal(t, 300*time.Millisecond, cfg.Timing.Grace)
		assert.Equal(t, 10*time.Second, cfg.Timing.AutoDismiss)
		assert.Equal(t, 3*time.Second, cfg.Timing.Notice)
		assert.Equal(t, ".bili-video-card", cfg.Selectors.Card)
		assert.Len(t, cfg.Selectors.Noise, 3)
	})

	t.Run("empty noise list keeps default noise selectors", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "selectors:\n  noise: []\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"div.floor-single-card",
			"div.bili-live-card",
			"div.bili-video-card.is-rcmd:not(.enable-no-interest)",
		}, cfg.Selectors.Noise)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("CARDFILTER_DSN", "file:custom.db")
		cfg, err := Load(writeConfig(t, "storage:\n  dsn: ${CARDFILTER_DSN}\n"))
		require.NoError(t, err)
		assert.Equal(t, "file:custom.db", cfg.Storage.DSN)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "invalid yaml content\n  with bad indentation\n    and no structure\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("pattern without capture group", func(t *testing.T) {
		_, err := Load(writeConfig(t, "selectors:\n  profile_pattern: 'example\\.com/\\d+'\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "capture group")
	})

	t.Run("broken pattern", func(t *testing.T) {
		_, err := Load(writeConfig(t, "selectors:\n  profile_pattern: '(['\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "selectors.profile_pattern")
	})

	t.Run("negative duration", func(t *testing.T) {
		_, err := Load(writeConfig(t, "timing:\n  dwell: -1s\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timing.dwell must be positive")
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, "127.0.0.1:8080", listen)
	assert.Equal(t, 30*time.Second, timeout)
	assert.Equal(t, `space\.bilibili\.com/(\d+)`, cfg.Selectors.ProfilePattern)
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, VerifyAgainstEmbeddedSchema(Default()))
	})

	t.Run("same storage keys", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.AuthorsKey = cfg.Storage.KeywordsKey
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must differ")
	})

	t.Run("missing card selector", func(t *testing.T) {
		cfg := Default()
		cfg.Selectors.Card = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "selectors.card is required")
	})
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)
	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "profile_pattern")
}
