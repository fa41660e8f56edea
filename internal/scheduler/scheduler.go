package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/yashtriyar/stock-watchlist-bot/internal/alert"
	"github.com/yashtriyar/stock-watchlist-bot/internal/config"
	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
	"github.com/yashtriyar/stock-watchlist-bot/internal/market"
	"github.com/yashtriyar/stock-watchlist-bot/internal/telegram"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

// Scheduler drives the monitoring loop: refresh prices, evaluate alerts,
// dedup, deliver. One cycle per tick, strictly sequential.
type Scheduler struct {
	market   *market.Client
	repo     *watchlist.Repository
	engine   *alert.Engine
	notifier *telegram.Notifier
	config   *config.Config
	logger   *logger.Logger
	loc      *time.Location

	lastSummaryDay string
}

func NewScheduler(
	mc *market.Client,
	repo *watchlist.Repository,
	engine *alert.Engine,
	notifier *telegram.Notifier,
	cfg *config.Config,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		market:   mc,
		repo:     repo,
		engine:   engine,
		notifier: notifier,
		config:   cfg,
		logger:   log,
		loc:      cfg.MarketLocation(),
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	interval := s.config.MonitorInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", interval.String())

	// Run immediately on start
	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.maybeSendDailySummary()
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in monitoring cycle", "panic", fmt.Sprint(r))
			s.notifier.Send(fmt.Sprintf("🚨 **Monitoring Error**\n\n%v\n\nBot will continue monitoring...", r))
		}
	}()

	if s.config.Monitor.MarketHoursOnly && !s.isMarketOpen() {
		s.logger.Info("market closed, skipping cycle")
		return
	}

	s.logger.Info("starting monitoring cycle")

	positions, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("load watchlist", "error", err)
		return
	}
	if len(positions) == 0 {
		s.logger.Info("watchlist is empty")
		return
	}
	s.logger.Info("monitoring stocks", "count", len(positions))

	// 1. Refresh prices
	symbols := make([]string, len(positions))
	for i, p := range positions {
		symbols[i] = p.Symbol
	}
	prices := s.market.BulkPrices(ctx, symbols)
	if len(prices) > 0 {
		if err := s.repo.BulkUpdatePrices(prices); err != nil {
			s.logger.Error("bulk update prices", "error", err)
		}
		s.logger.Info("prices updated", "count", len(prices))
	}
	for i := range positions {
		if price, ok := prices[positions[i].Symbol]; ok {
			positions[i].CurrentPrice = price
		}
	}

	// 2. Evaluate per-symbol rules. A failed symbol never aborts the batch.
	var candidates []alert.Alert
	for _, pos := range positions {
		candidates = append(candidates, alert.CheckPriceAlerts(pos)...)

		snap, err := s.market.Indicators(ctx, pos.Symbol)
		if err != nil {
			s.logger.Debug("indicators unavailable", "symbol", pos.Symbol, "error", err)
			continue
		}
		candidates = append(candidates, alert.CheckTechnicalAlerts(pos.Symbol, snap)...)
	}

	// 3. Portfolio-wide rules
	candidates = append(candidates, alert.CheckPortfolioAlerts(positions)...)

	// 4. Dedup and deliver
	admitted := s.engine.Admit(candidates)
	if len(admitted) > 0 {
		s.logger.Info("sending alerts", "count", len(admitted), "candidates", len(candidates))
		s.notifier.DeliverAlerts(admitted)
	} else {
		s.logger.Info("no new alerts", "candidates", len(candidates))
	}

	s.logger.Info("monitoring cycle completed", "market_open", s.isMarketOpen())
}

// isMarketOpen reports whether the NSE main session is running:
// 09:15-15:30 IST, weekdays.
func (s *Scheduler) isMarketOpen() bool {
	now := time.Now().In(s.loc)

	weekday := now.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}

	totalMinutes := now.Hour()*60 + now.Minute()
	return totalMinutes >= 555 && totalMinutes <= 930
}

func (s *Scheduler) maybeSendDailySummary() {
	now := time.Now().In(s.loc)
	day := now.Format("2006-01-02")
	if now.Hour() != s.config.Monitor.SummaryHour || s.lastSummaryDay == day {
		return
	}
	s.lastSummaryDay = day
	s.sendDailySummary(now)
}

func (s *Scheduler) sendDailySummary(now time.Time) {
	positions, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("load watchlist for summary", "error", err)
		return
	}
	if len(positions) == 0 {
		return
	}

	total := len(positions)
	profitable := 0
	best, worst := positions[0], positions[0]
	for _, p := range positions {
		pnl := p.PnLPercent()
		if pnl > 0 {
			profitable++
		}
		if pnl > best.PnLPercent() {
			best = p
		}
		if pnl < worst.PnLPercent() {
			worst = p
		}
	}
	winRate := float64(profitable) / float64(total) * 100

	msg := fmt.Sprintf("📊 **Daily Summary - %s**\n\n"+
		"📈 **Portfolio Status:**\n"+
		"• Total Positions: %d\n"+
		"• Profitable: %d/%d\n"+
		"• Win Rate: %.1f%%\n\n"+
		"🏆 **Best Performer:** %s (%+.1f%%)\n"+
		"📉 **Worst Performer:** %s (%+.1f%%)\n\n"+
		"📱 Use /portfolio for detailed analysis",
		now.Format("01/02/2006"), total, profitable, total, winRate,
		best.Symbol, best.PnLPercent(), worst.Symbol, worst.PnLPercent())

	s.notifier.Send(msg)
	s.logger.Info("daily summary sent")
}
