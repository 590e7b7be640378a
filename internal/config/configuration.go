package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DotEnvFiles are loaded, when present, before the environment is read.
// Variables already set in the environment win.
var DotEnvFiles = []string{".env.local", ".env"}

type Config struct {
	// WebServer Configuration
	WebServerPort     int           `mapstructure:"WEBSERVER_PORT" validate:"min=1,max=65535"`
	SessionSecret     string        `mapstructure:"SESSION_SECRET" validate:"omitempty,min=32"`
	PipelineIdleAfter time.Duration `mapstructure:"PIPELINE_IDLE_AFTER"`
	CommentLimit      int           `mapstructure:"COMMENT_LIMIT" validate:"min=1,max=500"`
	AllowedOrigins    []string      `mapstructure:"CORS_ALLOWED_ORIGINS" validate:"dive,eq=*|url"`

	YouTube YouTube
	LLM     LLM
}

// YouTube configures the YouTube Data API client.
type YouTube struct {
	APIKey            string        `mapstructure:"YOUTUBE_API_KEY" validate:"required"`
	RegionCode        string        `mapstructure:"YOUTUBE_REGION_CODE" validate:"omitempty,len=2"`
	RelevanceLanguage string        `mapstructure:"YOUTUBE_RELEVANCE_LANGUAGE"`
	SearchBatch       int           `mapstructure:"YOUTUBE_SEARCH_BATCH" validate:"min=1,max=50"`
	RequestsPerSecond float64       `mapstructure:"YOUTUBE_REQUESTS_PER_SECOND" validate:"min=0"`
	Timeout           time.Duration `mapstructure:"YOUTUBE_TIMEOUT"`
}

// LLM configures the text generation provider.
type LLM struct {
	Provider        string        `mapstructure:"LLM_PROVIDER" validate:"oneof=openai gemini"`
	Model           string        `mapstructure:"LLM_MODEL"`
	Timeout         time.Duration `mapstructure:"LLM_TIMEOUT"`
	OpenAIKey       string        `mapstructure:"OPENAI_API_KEY" validate:"required_if=Provider openai"`
	OpenAIBaseURL   string        `mapstructure:"OPENAI_BASE_URL" validate:"omitempty,url"`
	GeminiKey       string        `mapstructure:"GEMINI_API_KEY" validate:"required_if=Provider gemini"`
	ContentLanguage string        `mapstructure:"CONTENT_LANGUAGE" validate:"bcp47_language_tag"`
}

// LogValue keeps secrets out of the logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("webserver_port", c.WebServerPort),
		slog.Bool("session_secret_set", c.SessionSecret != ""),
		slog.Duration("pipeline_idle_after", c.PipelineIdleAfter),
		slog.Int("comment_limit", c.CommentLimit),
		slog.Any("cors_allowed_origins", c.AllowedOrigins),
		slog.Any("youtube", c.YouTube),
		slog.Any("llm", c.LLM),
	)
}

func (y YouTube) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("api_key_set", y.APIKey != ""),
		slog.String("region_code", y.RegionCode),
		slog.String("relevance_language", y.RelevanceLanguage),
		slog.Int("search_batch", y.SearchBatch),
		slog.Float64("requests_per_second", y.RequestsPerSecond),
		slog.Duration("timeout", y.Timeout),
	)
}

func (l LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", l.Provider),
		slog.String("model", l.Model),
		slog.Duration("timeout", l.Timeout),
		slog.Bool("openai_key_set", l.OpenAIKey != ""),
		slog.String("openai_base_url", l.OpenAIBaseURL),
		slog.Bool("gemini_key_set", l.GeminiKey != ""),
		slog.String("content_language", l.ContentLanguage),
	)
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			_ = viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && tag == "" {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedTag := nestedTyp.Field(j).Tag.Get("mapstructure")
				if nestedTag != "" {
					// Nested fields are read from the flat environment.
					_ = viper.BindEnv(field.Name+"."+nestedTag, nestedTag)
				}
			}
		}
	}
}

func setDefaults() {
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("PIPELINE_IDLE_AFTER", 30*time.Minute)
	viper.SetDefault("COMMENT_LIMIT", 100)

	viper.SetDefault("YouTube.YOUTUBE_REGION_CODE", "KR")
	viper.SetDefault("YouTube.YOUTUBE_RELEVANCE_LANGUAGE", "ko")
	viper.SetDefault("YouTube.YOUTUBE_SEARCH_BATCH", 25)
	viper.SetDefault("YouTube.YOUTUBE_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("YouTube.YOUTUBE_TIMEOUT", 15*time.Second)

	viper.SetDefault("LLM.LLM_PROVIDER", "openai")
	viper.SetDefault("LLM.LLM_TIMEOUT", 60*time.Second)
	viper.SetDefault("LLM.CONTENT_LANGUAGE", "ko")
}

// LoadDotEnv loads the given files into the process environment, skipping
// files that do not exist.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
		slog.Debug("Loaded env file", "file", f)
	}
	return nil
}

func load() (Config, error) {
	if err := LoadDotEnv(DotEnvFiles...); err != nil {
		return Config{}, err
	}

	bindEnv(Config{})
	viper.AutomaticEnv()
	setDefaults()

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and validates the full web server configuration.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Loaded configuration", "config", cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadYouTubeConfig reads and validates only the YouTube section, for tools
// that never call a text generation provider.
func LoadYouTubeConfig(ctx context.Context) (*YouTube, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Loaded configuration", "youtube", cfg.YouTube)

	if err := validator.New().Struct(cfg.YouTube); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg.YouTube, nil
}
