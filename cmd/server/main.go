package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nopass0/repitnew_backend/internal/api"
	"github.com/Nopass0/repitnew_backend/internal/app"
	"github.com/Nopass0/repitnew_backend/internal/config"
	"github.com/Nopass0/repitnew_backend/internal/notify"
	"github.com/Nopass0/repitnew_backend/internal/render"
	"github.com/Nopass0/repitnew_backend/internal/repository"
	"github.com/Nopass0/repitnew_backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, "migrations")
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	subjectRepo := repository.NewSubjectRepository(pool, logger)
	lessonRepo := repository.NewLessonRepository(pool, logger)
	prepaymentRepo := repository.NewPrepaymentRepository(pool, logger)

	generator := service.NewGenerator(logger)
	scheduleService := service.NewScheduleService(subjectRepo, lessonRepo, prepaymentRepo, generator, logger)

	var notifier app.DebtNotifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
		logger.Info("Telegram debt notifications enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	}

	scheduler := app.NewScheduler(scheduleService, notifier, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	debouncer := app.NewDebouncer(cfg.RecalcDebounce, logger)
	defer debouncer.Stop()

	renderer := render.NewWeekRenderer(cfg.FontPath)
	controller := api.NewController(scheduleService, generator, renderer, debouncer, logger)
	server := api.NewServer(controller, cfg.HTTPAddr, logger)

	// Останавливаемся по SIGINT/SIGTERM
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutdown signal received")
		if err := server.Shutdown(); err != nil {
			logger.Error("Failed to shutdown server", zap.Error(err))
		}
		cancel()
	}()

	logger.Sugar().Infow("Starting repitnew backend",
		"environment", cfg.Environment,
		"http_addr", cfg.HTTPAddr)

	if err := server.Start(); err != nil {
		logger.Fatal("HTTP server stopped", zap.Error(err))
	}
}
