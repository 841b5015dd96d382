package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"mama-doner/bot"
	"mama-doner/config"
	"mama-doner/db"
	"mama-doner/logger"
	"mama-doner/services"
	"mama-doner/web"
)

func main() {
	log := logger.New("mama-doner")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	if cfg.Payment.ProviderToken == "" {
		log.Warn("PROVIDER_TOKEN is not set, payments will not work")
	}

	lc := &services.Lifecycle{
		Menu:          services.PgMenuStore{},
		Pending:       services.PgPendingStore{},
		Orders:        services.PgOrderStore{},
		ProviderToken: cfg.Payment.ProviderToken,
		Currency:      cfg.Payment.Currency,
		Log:           log,
	}

	var b *bot.Bot
	if cfg.Telegram.Token != "" {
		b, err = bot.New(cfg, lc, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bot:", err)
			os.Exit(1)
		}
		lc.Issuer = bot.NewInvoiceLinkIssuer(b.API())
	}

	e := web.New(lc, log)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Web.Port)
		log.Info("web server starting", slog.String("addr", addr))
		if err := e.Start(addr); err != nil {
			log.Error("web server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	if cfg.Payment.PendingTTL > 0 {
		go sweepPendingOrders(cfg.Payment.PendingTTL, log)
	}

	if b == nil {
		log.Warn("BOT_TOKEN is not set, running in web-only mode")
		select {}
	}

	log.Info("bot started")
	b.Start()
}

// sweepPendingOrders drops abandoned drafts once an hour.
func sweepPendingOrders(ttl time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		n, err := services.DeleteExpiredPendingCarts(context.Background(), ttl)
		if err != nil {
			log.Error("sweep pending orders", slog.Any("error", err))
			continue
		}
		if n > 0 {
			log.Info("expired pending orders removed", slog.Int64("count", n))
		}
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
