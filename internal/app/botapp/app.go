package botapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ivankudzin/datebot/internal/config"
	tginfra "github.com/ivankudzin/datebot/internal/infra/telegram"
	"github.com/ivankudzin/datebot/internal/jobs/cleanup"
	pgrepo "github.com/ivankudzin/datebot/internal/repo/postgres"
	redisrepo "github.com/ivankudzin/datebot/internal/repo/redis"
	"github.com/ivankudzin/datebot/internal/services/chat"
	"github.com/ivankudzin/datebot/internal/services/dialog"
	"github.com/ivankudzin/datebot/internal/services/matching"
	"github.com/ivankudzin/datebot/internal/services/notify"
	"github.com/ivankudzin/datebot/internal/services/profiles"
	opshttp "github.com/ivankudzin/datebot/internal/transport/http"
)

type App struct {
	cfg    config.Config
	logger *zap.Logger

	postgres *pgxpool.Pool
	redis    *goredis.Client
	bot      *tginfra.Bot

	dialogService *dialog.Service
	cleanupJob    *cleanup.Job
	opsServer     *opshttp.Server
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("init postgres for bot app: %w", err)
	}
	if err := pgrepo.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	redisClient, err := redisrepo.NewClient(ctx, redisrepo.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis for bot app: %w", err)
	}

	userRepo := pgrepo.NewUserRepo(pool)
	interactionRepo := pgrepo.NewInteractionRepo(pool)
	messageRepo := pgrepo.NewMessageRepo(pool)
	notificationRepo := pgrepo.NewNotificationRepo(pool)
	blockRepo := pgrepo.NewBlockRepo(pool)
	stateRepo := redisrepo.NewStateRepo(redisClient, cfg.Dialog.StateTTL)

	profileService := profiles.NewService(userRepo)
	notifyService := notify.NewService(notificationRepo)
	matchingService := matching.NewService(matching.Dependencies{
		Interactions: interactionRepo,
		Profiles:     userRepo,
		Notifier:     notifyService,
	})
	chatService := chat.NewService(chat.Dependencies{
		Matches:  interactionRepo,
		Blocks:   blockRepo,
		Messages: messageRepo,
	})
	dialogService := dialog.NewService(dialog.Dependencies{
		States:        stateRepo,
		Profiles:      profileService,
		Matchmaker:    matchingService,
		Chats:         chatService,
		Notifications: notifyService,
		AgeMin:        cfg.Profile.AgeMin,
		AgeMax:        cfg.Profile.AgeMax,
		HistoryLimit:  cfg.Dialog.HistoryLimit,
	})

	cleanupJob := cleanup.New(notificationRepo, cfg.Notifications.ReadRetention, logger)
	opsServer := opshttp.NewServer(cfg.HTTP, pool, redisClient, logger)

	var bot *tginfra.Bot
	if strings.TrimSpace(cfg.Bot.Token) != "" {
		bot, err = tginfra.NewBot(cfg.Bot.Token, cfg.Bot.PollTimeout)
		if err != nil {
			pool.Close()
			_ = redisClient.Close()
			return nil, fmt.Errorf("init telegram bot: %w", err)
		}
	} else {
		logger.Warn("BOT_TOKEN is empty, update listener disabled")
	}

	return &App{
		cfg:           cfg,
		logger:        logger,
		postgres:      pool,
		redis:         redisClient,
		bot:           bot,
		dialogService: dialogService,
		cleanupJob:    cleanupJob,
		opsServer:     opsServer,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("bot app started")

	errCh := make(chan error, 3)
	go func() {
		errCh <- a.runCleanupLoop(ctx)
	}()
	go func() {
		errCh <- a.opsServer.Run(ctx)
	}()

	if a.bot != nil {
		go func() {
			errCh <- a.bot.Listen(ctx, tginfra.Handlers{
				OnCommand:  a.handleCommand,
				OnText:     a.handleText,
				OnCallback: a.handleCallback,
			})
		}()
	}

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("bot app stopped")
			return nil
		case err := <-errCh:
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
			return err
		}
	}
}

func (a *App) runCleanupLoop(ctx context.Context) error {
	if a.cleanupJob == nil {
		return nil
	}

	interval := a.cfg.Notifications.CleanupInterval
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	if err := a.cleanupJob.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := a.cleanupJob.Run(ctx); err != nil {
				return err
			}
		}
	}
}

func (a *App) Close() {
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
