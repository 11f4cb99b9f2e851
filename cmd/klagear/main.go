package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/KlaGear/internal/api"
	"github.com/Kerhoff/KlaGear/internal/config"
	"github.com/Kerhoff/KlaGear/internal/handlers"
	"github.com/Kerhoff/KlaGear/internal/handoff"
	"github.com/Kerhoff/KlaGear/internal/metrics"
	"github.com/Kerhoff/KlaGear/internal/repository"
	"github.com/Kerhoff/KlaGear/internal/repository/jsonfile"
	"github.com/Kerhoff/KlaGear/internal/repository/postgres"
	"github.com/Kerhoff/KlaGear/internal/service"
	"github.com/Kerhoff/KlaGear/internal/store"
	"github.com/Kerhoff/KlaGear/internal/telegram"
	"github.com/Kerhoff/KlaGear/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	l.Info("Starting KlaGear...")

	m := metrics.New()

	// Database
	db, err := config.NewDatabase(cfg.DatabaseURL, l)
	if err != nil {
		l.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		l.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories. The catalog can come from a JSON file instead of the
	// database; booking requests are always stored in Postgres.
	var (
		gearRepo     repository.GearRepository
		categoryRepo repository.CategoryRepository
	)
	if cfg.CatalogFile != "" {
		cat, err := jsonfile.Open(cfg.CatalogFile)
		if err != nil {
			l.Fatalf("Failed to open catalog file: %v", err)
		}
		gearRepo, categoryRepo = cat.Gear(), cat.Categories()
		logger.WithFields(l, logrus.Fields{"file": cfg.CatalogFile}).Info("Serving catalog from file")
	} else {
		gearRepo = postgres.NewGearRepository(db.DB)
		categoryRepo = postgres.NewCategoryRepository(db.DB)
	}
	bookingRepo := postgres.NewBookingRepository(db.DB)

	// Service layer
	svc := service.New(l, m, gearRepo, categoryRepo, bookingRepo, service.Options{
		Contact: handoff.Contact{
			WhatsApp: cfg.BusinessWhatsApp,
			Phone:    cfg.BusinessPhone,
			Email:    cfg.BusinessEmail,
		},
		PaymentRedirect: cfg.PaymentRedirect,
	})

	if err := svc.Reload(context.Background()); err != nil {
		l.Fatalf("Failed to load catalog: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// Start catalog refresher
	go svc.StartCatalogRefresher(ctx, cfg.CatalogRefresh)

	// Telegram bot
	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.OperatorChatID, l)
		if err != nil {
			l.Fatalf("Failed to create Telegram bot: %v", err)
		}
		registerCommands(bot, svc, cfg.OperatorChatID, l)
		svc.SetNotifier(bot)

		go func() {
			if err := bot.Start(ctx); err != nil {
				l.Errorf("Bot error: %v", err)
			}
		}()
	} else {
		l.Info("TELEGRAM_TOKEN not set, Telegram channel disabled")
	}

	// HTTP API
	apiServer := api.NewServer(svc, l)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           m.Instrument(apiServer.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	// Prometheus metrics
	metricsServer := &http.Server{
		Addr:              ":" + cfg.PrometheusPort,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Infof("Metrics server listening on :%s", cfg.PrometheusPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("Metrics server error: %v", err)
		}
	}()

	l.Info("KlaGear started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP servers...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.WithError(err).Warn("HTTP server shutdown")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		l.WithError(err).Warn("Metrics server shutdown")
	}

	l.Info("KlaGear stopped")
}

func registerCommands(bot *telegram.Bot, svc *service.Service, operatorChatID int64, l *logrus.Logger) {
	carts := store.NewMemory[store.Cart]()
	carts.Subscribe(func(c store.Change[store.Cart]) {
		l.WithFields(logrus.Fields{
			"chat":    c.Key,
			"lines":   len(c.Value.Lines),
			"cleared": c.Deleted,
		}).Debug("Quote cart changed")
	})
	wishlists := store.NewMemory[store.Wishlist]()

	bot.RegisterCommand("start", handlers.NewStartHandler(l))
	bot.RegisterCommand("help", handlers.NewHelpHandler(l))

	// Catalog handlers
	bot.RegisterCommand("gear", handlers.NewGearHandler(svc, l))
	bot.RegisterCommand("categories", handlers.NewCategoriesHandler(svc, l))
	bot.RegisterCommand("recommend", handlers.NewRecommendHandler(svc, l))
	bot.RegisterCommand("compare", handlers.NewCompareHandler(svc, l))
	bot.RegisterCommand("available", handlers.NewAvailableHandler(svc, l))

	// Quote handlers
	add := handlers.NewAddHandler(svc, carts, l)
	bot.RegisterCommand("add", add)
	bot.RegisterCallback(handlers.CallbackAdd, add)
	bot.RegisterCommand("remove", handlers.NewRemoveHandler(carts, l))
	bot.RegisterCommand("quote", handlers.NewQuoteHandler(svc, carts, l))
	bot.RegisterCommand("clear", handlers.NewClearHandler(carts, l))

	// Saved items
	bot.RegisterCommand("save", handlers.NewSaveHandler(svc, wishlists, l))
	bot.RegisterCommand("saved", handlers.NewSavedHandler(svc, wishlists, l))

	// Operator
	bot.RegisterCommand("bookings", handlers.NewBookingsHandler(svc, operatorChatID, l))
}
