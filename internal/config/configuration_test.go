package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	prev := DotEnvFiles
	DotEnvFiles = nil
	t.Cleanup(func() { DotEnvFiles = prev })
}

func TestLoadConfig_Success_Defaults(t *testing.T) {
	resetViper(t)

	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("OPENAI_API_KEY", "sk-key")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, 8080, cfg.WebServerPort)
	require.Equal(t, 100, cfg.CommentLimit)
	require.Equal(t, 30*time.Minute, cfg.PipelineIdleAfter)

	require.Equal(t, "yt-key", cfg.YouTube.APIKey)
	require.Equal(t, "KR", cfg.YouTube.RegionCode)
	require.Equal(t, "ko", cfg.YouTube.RelevanceLanguage)
	require.Equal(t, 25, cfg.YouTube.SearchBatch)
	require.Equal(t, 15*time.Second, cfg.YouTube.Timeout)

	require.Equal(t, "openai", cfg.LLM.Provider)
	require.Equal(t, "sk-key", cfg.LLM.OpenAIKey)
	require.Equal(t, "ko", cfg.LLM.ContentLanguage)
	require.Equal(t, time.Minute, cfg.LLM.Timeout)
}

func TestLoadConfig_ValidationError(t *testing.T) {
	resetViper(t)

	t.Setenv("OPENAI_API_KEY", "sk-key")
	// Missing YOUTUBE_API_KEY

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_ProviderKeyRequired(t *testing.T) {
	resetViper(t)

	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("OPENAI_API_KEY", "sk-key")

	_, err := LoadConfig(context.Background())
	require.Error(t, err)

	t.Setenv("GEMINI_API_KEY", "g-key")
	viper.Reset()
	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestLoadConfig_Overrides(t *testing.T) {
	resetViper(t)

	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("OPENAI_API_KEY", "sk-key")
	t.Setenv("WEBSERVER_PORT", "9090")
	t.Setenv("YOUTUBE_SEARCH_BATCH", "10")
	t.Setenv("YOUTUBE_TIMEOUT", "3s")
	t.Setenv("CONTENT_LANGUAGE", "en-US")
	t.Setenv("COMMENT_LIMIT", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.WebServerPort)
	require.Equal(t, 10, cfg.YouTube.SearchBatch)
	require.Equal(t, 3*time.Second, cfg.YouTube.Timeout)
	require.Equal(t, "en-US", cfg.LLM.ContentLanguage)
	require.Equal(t, 250, cfg.CommentLimit)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	for key, value := range map[string]string{
		"LLM_PROVIDER":         "other",
		"YOUTUBE_SEARCH_BATCH": "500",
		"COMMENT_LIMIT":        "0",
		"SESSION_SECRET":       "short",
		"CONTENT_LANGUAGE":     "not a tag",
		"CORS_ALLOWED_ORIGINS": "not-a-url",
	} {
		t.Run(key, func(t *testing.T) {
			resetViper(t)
			t.Setenv("YOUTUBE_API_KEY", "yt-key")
			t.Setenv("OPENAI_API_KEY", "sk-key")
			t.Setenv(key, value)

			_, err := LoadConfig(context.Background())
			require.Error(t, err)
		})
	}
}

func TestLoadYouTubeConfig_IgnoresLLMSection(t *testing.T) {
	resetViper(t)

	t.Setenv("YOUTUBE_API_KEY", "yt-key")
	t.Setenv("OPENAI_API_KEY", "")

	yt, err := LoadYouTubeConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "yt-key", yt.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("TRENDSCOUT_TEST_VALUE=from-file\n"), 0o600))

	t.Setenv("TRENDSCOUT_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("TRENDSCOUT_TEST_VALUE"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), file))
	require.Equal(t, "from-file", os.Getenv("TRENDSCOUT_TEST_VALUE"))
}
