// Package app initializes every component of the application.
// app.go is the assembly point: it builds the database pool, the gateway
// client, repositories, services, handlers, router and scheduler, and
// hands them back as one App. The store is constructed here and injected
// everywhere — no package-level connection state.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/bot"
	"ledgerbot/internal/config"
	"ledgerbot/internal/db/postgres"
	"ledgerbot/internal/features/archive"
	"ledgerbot/internal/features/points"
	"ledgerbot/internal/features/tasks"
	"ledgerbot/internal/gateway"
	"ledgerbot/internal/jobs"
)

// App holds the assembled application.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	Gateway   *gateway.Telegram
}

// New builds and initializes the application. The order matters: a dead
// database or a bad token must abort startup before any polling begins.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Database ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	// === 2. Telegram gateway ===
	tg, err := gateway.NewTelegram(ctx, cfg.TelegramBotToken, cfg.AppEnv == "development", cfg.BotUpdateTimeoutSeconds)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("gateway setup failed: %w", err)
	}

	loc, err := time.LoadLocation(cfg.AppTimezone)
	if err != nil {
		log.WithError(err).Warnf("Could not load %s, falling back to UTC", cfg.AppTimezone)
		loc = time.UTC
	}

	// === 3. Repositories ===
	archiveRepo := archive.NewRepository(pool)
	pointsRepo := points.NewRepository(pool)
	tasksRepo := tasks.NewRepository(pool)

	// === 4. Services ===
	pointsService := points.NewService(pointsRepo)
	tasksService := tasks.NewService(tasksRepo)
	resolver := gateway.NewResolver(tg)
	exporter := archive.NewExporter(archiveRepo, cfg.ExportPageSize, cfg.ExportMaxPages, cfg.ExportPagePause, loc)

	// === 5. Handlers ===
	archiveHandler := archive.NewHandler(archiveRepo, exporter, tg, cfg.AckErrorTTL)
	pointsHandler := points.NewHandler(pointsService, tg, archiveRepo, resolver, cfg.AckSuccessTTL, cfg.AckErrorTTL)
	tasksHandler := tasks.NewHandler(tasksService, tg, archiveRepo, cfg.EmojiToggleTask, cfg.AckSuccessTTL, cfg.AckErrorTTL)

	// === 6. Router and bot ===
	router := bot.NewRouter(tg.BotID(), cfg.GuildChatID)
	b := bot.New(cfg, tg, router, archiveHandler, pointsHandler, tasksHandler)

	// === 7. Scheduler ===
	scheduler := jobs.NewScheduler(loc, pointsService, tg, resolver, cfg.GuildChatID, cfg.SummaryCronSpec, cfg.SummaryTopN)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		Gateway:   tg,
	}, nil
}

// RunMigrations applies all SQL migrations in order. Exposed for the
// repository integration tests, which run against a scratch database.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Archive},
		{2, migration002Points},
		{3, migration003Tasks},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		log.Infof("Migration %d applied", m.version)
	}

	return nil
}

// SQL migrations are embedded in the binary to keep deployment to one
// artifact.

var migration001Archive = `
CREATE TABLE IF NOT EXISTS channel_messages (
    chat_id BIGINT NOT NULL,
    message_id BIGINT NOT NULL,
    author_id BIGINT NOT NULL,
    author_name VARCHAR(255) NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    sent_at TIMESTAMP NOT NULL,
    PRIMARY KEY (chat_id, message_id)
);
CREATE INDEX IF NOT EXISTS idx_channel_messages_sent_at ON channel_messages(chat_id, sent_at DESC);
`

var migration002Points = `
CREATE TABLE IF NOT EXISTS user_points (
    user_id BIGINT PRIMARY KEY,
    points BIGINT NOT NULL DEFAULT 0 CHECK (points >= 0),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS point_grants (
    message_id BIGINT NOT NULL,
    giver_user_id BIGINT NOT NULL,
    receiver_user_id BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (message_id, giver_user_id)
);
CREATE INDEX IF NOT EXISTS idx_point_grants_receiver ON point_grants(receiver_user_id);
`

var migration003Tasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tasks_incomplete ON tasks(id) WHERE completed = FALSE;
CREATE TABLE IF NOT EXISTS task_messages (
    chat_id BIGINT NOT NULL,
    message_id BIGINT NOT NULL,
    task_id BIGINT NOT NULL REFERENCES tasks(id),
    PRIMARY KEY (chat_id, message_id)
);
`
