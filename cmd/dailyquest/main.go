package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"daily-quest/internal/auth"
	"daily-quest/internal/bot"
	"daily-quest/internal/config"
	"daily-quest/internal/httpapi"
	"daily-quest/internal/logging"
	"daily-quest/internal/metrics"
	"daily-quest/internal/repository"
	"daily-quest/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.Production())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("db", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	missionRepo := repository.NewMissionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	authManager := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	m := metrics.New()

	userSvc := service.NewUserService(userRepo, authManager)
	catalogSvc := service.NewCatalogService(templateRepo)
	selectionSvc := service.NewSelectionService(selectionRepo, cfg.Location)
	missionSvc := service.NewMissionService(missionRepo, projectRepo)
	progressSvc := service.NewProgressService(progressRepo, missionRepo, cfg.Location)
	projectSvc := service.NewProjectService(projectRepo, repository.NewProjectTaskRepository(db))
	quoteSvc := service.NewQuoteService(quoteRepo)
	reminderSvc := service.NewReminderService(selectionSvc, progressSvc, quoteSvc)

	if err := catalogSvc.Seed(ctx, service.DefaultTemplates); err != nil {
		slog.Error("seed catalog", "error", err)
		os.Exit(1)
	}
	if err := quoteSvc.Seed(ctx, service.DefaultQuotes); err != nil {
		slog.Error("seed quotes", "error", err)
		os.Exit(1)
	}

	handler := (&httpapi.API{
		Auth:               authManager,
		Users:              userSvc,
		Catalog:            catalogSvc,
		Selections:         selectionSvc,
		Missions:           missionSvc,
		Progress:           progressSvc,
		Projects:           projectSvc,
		Quotes:             quoteSvc,
		Metrics:            m,
		SecureCookies:      cfg.Production(),
		MainProjectKeyword: cfg.MainProjectKeyword,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
	}).Router()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := service.NewSchedulerService(cfg.Location, 30*time.Second)
	if cfg.RetentionDays > 0 {
		if _, err := scheduler.DailyAt("prune-selections", "03:00", func(jobCtx context.Context) error {
			n, err := selectionSvc.Prune(jobCtx, cfg.RetentionDays)
			if err == nil {
				slog.Info("pruned selections", "deleted", n)
			}
			return err
		}); err != nil {
			slog.Error("schedule prune", "error", err)
			os.Exit(1)
		}
	}

	errCh := make(chan error, 2)

	if cfg.BotEnabled() {
		telegramBot, err := bot.New(cfg.TelegramToken, bot.Services{
			Users:      userSvc,
			Catalog:    catalogSvc,
			Selections: selectionSvc,
			Missions:   missionSvc,
			Progress:   progressSvc,
			Quotes:     quoteSvc,
			Reminders:  reminderSvc,
		}, m)
		if err != nil {
			slog.Error("bot", "error", err)
			os.Exit(1)
		}
		if _, err := scheduler.DailyAt("daily-report", cfg.ReportTime, telegramBot.SendDailyReports); err != nil {
			slog.Error("schedule reports", "error", err)
			os.Exit(1)
		}
		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, bot disabled")
	}

	scheduler.Start()
	defer scheduler.Stop()

	go func() {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		slog.Error("component stopped with error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "error", err)
	}
	slog.Info("shutdown complete")
}
