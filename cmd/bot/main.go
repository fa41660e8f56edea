package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yashtriyar/stock-watchlist-bot/internal/ai"
	"github.com/yashtriyar/stock-watchlist-bot/internal/alert"
	"github.com/yashtriyar/stock-watchlist-bot/internal/config"
	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
	"github.com/yashtriyar/stock-watchlist-bot/internal/market"
	"github.com/yashtriyar/stock-watchlist-bot/internal/scheduler"
	"github.com/yashtriyar/stock-watchlist-bot/internal/telegram"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
	"github.com/yashtriyar/stock-watchlist-bot/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "data/watchlist.db", "path to SQLite database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info("starting stock-watchlist-bot", "ai_enabled", cfg.AIEnabled())

	db, err := watchlist.NewDatabase(*dbPath)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	repo := watchlist.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	marketClient := market.NewClient(cfg, log)
	aiClient := ai.NewClient(cfg, log)
	engine := alert.NewEngine(cfg.AlertCooldown(), cfg.Alerts.HistoryLimit)
	notifier := telegram.NewNotifier(cfg, log)
	sched := scheduler.NewScheduler(marketClient, repo, engine, notifier, cfg, log)
	webServer := web.NewServer(repo, engine, cfg, log)

	go sched.Run(ctx)

	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()

	if cfg.Telegram.Enabled {
		bot, err := telegram.NewBot(cfg, repo, marketClient, aiClient, engine, log)
		if err != nil {
			log.Error("telegram bot init failed", "error", err)
			os.Exit(1)
		}
		go bot.Run(ctx)
	}

	positions, _ := repo.GetAll()
	notifier.Send(fmt.Sprintf("🤖 **Stock Watchlist Bot Started!**\n\n"+
		"• Monitoring %d stocks\n"+
		"• Update interval: %s\n\n"+
		"📱 Use /help for available commands",
		len(positions), cfg.Monitor.Interval))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutdown signal received", "signal", sig.String())

	cancel() // stop scheduler and bot polling

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	notifier.Send("🛑 Stock Watchlist Bot stopped")
	log.Info("stock-watchlist-bot stopped")
}
