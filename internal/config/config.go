// Package config loads the bot configuration from environment variables.
// envconfig maps environment variables onto the Config struct; required
// values that are missing make startup fail before anything connects.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds ALL application settings.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// The one group chat the bot serves. Reactions anywhere else are ignored.
	GuildChatID int64 `envconfig:"GUILD_CHAT_ID" required:"true"`

	// --- Database ---
	// Inside Docker "localhost" is almost always wrong; default to the
	// compose service name and override DB_HOST=localhost for local runs.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"ledger_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"UTC"`

	// --- Bot runtime ---
	// How many updates are processed in parallel. Without a bound,
	// "goroutine per update" leaks memory under flood.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Long polling timeout (seconds)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Reaction bindings ---
	// Telegram only accepts reactions from its fixed emoji set, so the
	// bindings are configurable rather than hard-coded.
	EmojiGrantPoint  string `envconfig:"EMOJI_GRANT_POINT" default:"👍"`
	EmojiCheckPoints string `envconfig:"EMOJI_CHECK_POINTS" default:"❤"`
	EmojiCreateTask  string `envconfig:"EMOJI_CREATE_TASK" default:"✍"`
	EmojiListTasks   string `envconfig:"EMOJI_LIST_TASKS" default:"👀"`
	EmojiToggleTask  string `envconfig:"EMOJI_TOGGLE_TASK" default:"🫡"`

	// --- Acknowledgements ---
	// Success and error banners delete themselves after these intervals.
	AckSuccessTTL time.Duration `envconfig:"ACK_SUCCESS_TTL" default:"10s"`
	AckErrorTTL   time.Duration `envconfig:"ACK_ERROR_TTL" default:"5s"`

	// --- Export ---
	ExportPageSize  int           `envconfig:"EXPORT_PAGE_SIZE" default:"100"`
	ExportMaxPages  int           `envconfig:"EXPORT_MAX_PAGES" default:"20"`
	ExportPagePause time.Duration `envconfig:"EXPORT_PAGE_PAUSE" default:"2s"`

	// --- Daily summary ---
	SummaryCronSpec string `envconfig:"SUMMARY_CRON" default:"0 9 * * *"`
	SummaryTopN     int    `envconfig:"SUMMARY_TOP_N" default:"10"`

	// --- Rate limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature flags ---
	FeaturePointsEnabled bool `envconfig:"FEATURE_POINTS_ENABLED" default:"true"`
	FeatureTasksEnabled  bool `envconfig:"FEATURE_TASKS_ENABLED" default:"true"`
	FeatureExportEnabled bool `envconfig:"FEATURE_EXPORT_ENABLED" default:"true"`
	FeatureDailySummary  bool `envconfig:"FEATURE_DAILY_SUMMARY" default:"true"`
}

// DatabaseDSN returns the PostgreSQL connection string in DSN form.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.GuildChatID == 0 {
		return fmt.Errorf("GUILD_CHAT_ID is not set or zero")
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT must be > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS must be > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.ExportPageSize <= 0 || c.ExportMaxPages <= 0 {
		return fmt.Errorf("EXPORT_PAGE_SIZE and EXPORT_MAX_PAGES must be > 0")
	}
	if c.SummaryTopN <= 0 {
		return fmt.Errorf("SUMMARY_TOP_N must be > 0")
	}
	for name, emoji := range map[string]string{
		"EMOJI_GRANT_POINT":  c.EmojiGrantPoint,
		"EMOJI_CHECK_POINTS": c.EmojiCheckPoints,
		"EMOJI_CREATE_TASK":  c.EmojiCreateTask,
		"EMOJI_LIST_TASKS":   c.EmojiListTasks,
		"EMOJI_TOGGLE_TASK":  c.EmojiToggleTask,
	} {
		if emoji == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// Load reads environment variables and fills the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
