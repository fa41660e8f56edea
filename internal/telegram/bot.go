package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yashtriyar/stock-watchlist-bot/internal/ai"
	"github.com/yashtriyar/stock-watchlist-bot/internal/alert"
	"github.com/yashtriyar/stock-watchlist-bot/internal/config"
	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
	"github.com/yashtriyar/stock-watchlist-bot/internal/market"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

// Bot handles interactive watchlist commands over Telegram long polling.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
	repo   *watchlist.Repository
	market *market.Client
	ai     *ai.Client
	engine *alert.Engine
	logger *logger.Logger
}

func NewBot(
	cfg *config.Config,
	repo *watchlist.Repository,
	mc *market.Client,
	aiClient *ai.Client,
	engine *alert.Engine,
	log *logger.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	log.Info("telegram bot connected", "username", api.Self.UserName)

	return &Bot{
		api:    api,
		chatID: cfg.Telegram.ChatID,
		repo:   repo,
		market: mc,
		ai:     aiClient,
		engine: engine,
		logger: log,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("telegram bot polling started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot polling stopped")
			return
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			// single-user bot: ignore strangers
			if b.chatID != 0 && update.Message.Chat.ID != b.chatID {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic in command handler", "command", msg.Command(), "panic", fmt.Sprint(r))
		}
	}()

	switch msg.Command() {
	case "start", "help":
		b.reply(msg, helpMessage)
	case "add":
		b.handleAdd(ctx, msg)
	case "remove":
		b.handleRemove(msg)
	case "list":
		b.handleList(msg)
	case "alerts":
		b.handleAlerts(msg)
	case "portfolio":
		b.handlePortfolio(ctx, msg)
	case "insights":
		b.handleInsights(ctx, msg)
	default:
		b.reply(msg, "Unknown command. Use /help for the command list.")
	}
}

const helpMessage = `🤖 **Stock Watchlist Bot**

**Stock Management:**
• ` + "`/add SYMBOL buy=XX target=YY stop=ZZ notes=TEXT`" + `
• ` + "`/remove SYMBOL`" + `
• ` + "`/list`" + ` - watchlist with current prices and P&L

**Analysis:**
• ` + "`/alerts`" + ` - recent price and technical alerts
• ` + "`/portfolio`" + ` - portfolio overview
• ` + "`/insights SYMBOL`" + ` - AI analysis for a stock

**Example:**
` + "`/add RELIANCE buy=2500 target=2800 stop=2350 notes=Core holding`"

func (b *Bot) handleAdd(ctx context.Context, msg *tgbotapi.Message) {
	req, err := parseAddArgs(msg.CommandArguments())
	if err != nil {
		b.reply(msg, fmt.Sprintf("❌ %v\n\nUsage: `/add SYMBOL buy=XX target=YY stop=ZZ notes=TEXT`", err))
		return
	}

	if !b.market.ValidateSymbol(ctx, req.Symbol) {
		b.reply(msg, fmt.Sprintf("❌ Invalid stock symbol: %s", req.Symbol))
		return
	}

	pos := &watchlist.Position{
		Symbol:      req.Symbol,
		BuyPrice:    req.Buy,
		TargetPrice: req.Target,
		StopLoss:    req.Stop,
		Notes:       req.Notes,
	}
	if err := b.repo.Add(pos); err != nil {
		b.reply(msg, fmt.Sprintf("❌ Failed to add %s: %v", req.Symbol, err))
		return
	}

	if price, err := b.market.GetPrice(ctx, req.Symbol); err == nil {
		_ = b.repo.UpdatePrice(req.Symbol, price)
		pos.CurrentPrice = price
	}

	b.reply(msg, fmt.Sprintf("✅ **Added %s to watchlist!**\n\n"+
		"• Buy Price: ₹%.2f\n"+
		"• Target: ₹%.2f\n"+
		"• Stop Loss: ₹%.2f\n"+
		"• Current Price: ₹%.2f\n\n"+
		"🤖 I'll monitor this stock and send alerts!",
		pos.Symbol, pos.BuyPrice, pos.TargetPrice, pos.StopLoss, pos.CurrentPrice))
}

func (b *Bot) handleRemove(msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.reply(msg, "❌ Usage: `/remove SYMBOL`")
		return
	}
	symbol := watchlist.NormalizeSymbol(args[0])

	pos, err := b.repo.GetBySymbol(symbol)
	if err != nil {
		b.reply(msg, fmt.Sprintf("❌ %s not found in your watchlist", symbol))
		return
	}

	if err := b.repo.Remove(symbol); err != nil {
		b.reply(msg, fmt.Sprintf("❌ Failed to remove %s: %v", symbol, err))
		return
	}

	b.reply(msg, fmt.Sprintf("✅ **Removed %s** from watchlist\n\n"+
		"• Buy Price: ₹%.2f\n"+
		"• Current Price: ₹%.2f\n"+
		"• Final P&L: %+.1f%%",
		symbol, pos.BuyPrice, pos.CurrentPrice, pos.PnLPercent()))
}

func (b *Bot) handleList(msg *tgbotapi.Message) {
	positions, err := b.repo.GetAll()
	if err != nil {
		b.reply(msg, fmt.Sprintf("❌ Failed to load watchlist: %v", err))
		return
	}
	if len(positions) == 0 {
		b.reply(msg, "📋 **Your watchlist is empty**\n\nAdd stocks using `/add SYMBOL buy=XX target=YY stop=ZZ`")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 **Your Stock Watchlist**\n\n")

	for i, p := range positions {
		pnl := p.PnLPercent()
		pnlEmoji := "🟢"
		if pnl < 0 {
			pnlEmoji = "🔴"
		}

		var targetDist, stopDist float64
		if p.CurrentPrice > 0 {
			targetDist = (p.TargetPrice - p.CurrentPrice) / p.CurrentPrice * 100
			stopDist = (p.CurrentPrice - p.StopLoss) / p.CurrentPrice * 100
		}

		sb.WriteString(fmt.Sprintf("**%d. %s** %s\n", i+1, p.Symbol, pnlEmoji))
		sb.WriteString(fmt.Sprintf("💰 Current: ₹%.2f | P&L: %+.1f%%\n", p.CurrentPrice, pnl))
		sb.WriteString(fmt.Sprintf("🎯 Target: ₹%.2f (%+.1f%%)\n", p.TargetPrice, targetDist))
		sb.WriteString(fmt.Sprintf("🛑 Stop: ₹%.2f (%+.1f%%)\n\n", p.StopLoss, stopDist))
	}

	b.reply(msg, sb.String())
}

func (b *Bot) handleAlerts(msg *tgbotapi.Message) {
	recent := b.engine.Recent(10)
	if len(recent) == 0 {
		b.reply(msg, "📭 **No recent alerts**\n\n"+
			"I'll notify you when:\n"+
			"• Target prices are hit 🎯\n"+
			"• Stop losses are triggered 🛑\n"+
			"• Technical signals occur 📊")
		return
	}

	var sb strings.Builder
	sb.WriteString("🔔 **Recent Alerts**\n\n")
	for _, a := range recent {
		sb.WriteString(fmt.Sprintf("%s **%s** - %s\n📅 %s\n\n",
			markerForPriority(a.Priority), a.Symbol, a.Kind.Title(),
			a.Timestamp.Format("01/02 15:04")))
	}

	b.reply(msg, sb.String())
}

func markerForPriority(p alert.Priority) string {
	switch p {
	case alert.PriorityCritical:
		return "🚨"
	case alert.PriorityHigh:
		return "❗"
	case alert.PriorityMedium:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

func (b *Bot) handlePortfolio(ctx context.Context, msg *tgbotapi.Message) {
	positions, err := b.repo.GetAll()
	if err != nil {
		b.reply(msg, fmt.Sprintf("❌ Failed to load watchlist: %v", err))
		return
	}
	if len(positions) == 0 {
		b.reply(msg, "📋 **Portfolio is empty** - Add some stocks first!")
		return
	}

	total := len(positions)
	profitable := 0
	var sumPnl float64
	best, worst := positions[0], positions[0]

	for _, p := range positions {
		pnl := p.PnLPercent()
		sumPnl += pnl
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

	avgPnl := sumPnl / float64(total)
	winRate := float64(profitable) / float64(total) * 100

	var sb strings.Builder
	sb.WriteString("📊 **Portfolio Overview**\n")
	sb.WriteString(fmt.Sprintf("📈 **Total Positions:** %d\n\n", total))
	sb.WriteString("📊 **Performance:**\n")
	sb.WriteString(fmt.Sprintf("• Average P&L: %+.1f%%\n", avgPnl))
	sb.WriteString(fmt.Sprintf("• Win Rate: %.1f%% (%d/%d)\n", winRate, profitable, total))
	sb.WriteString(fmt.Sprintf("• Best: %s (%+.1f%%)\n", best.Symbol, best.PnLPercent()))
	sb.WriteString(fmt.Sprintf("• Worst: %s (%+.1f%%)\n", worst.Symbol, worst.PnLPercent()))

	if b.ai.Enabled() {
		if insight, err := b.ai.PortfolioInsight(ctx, positions); err == nil {
			sb.WriteString("\n🤖 **AI Analysis:**\n")
			sb.WriteString(insight)
		} else {
			b.logger.Error("portfolio insight", "error", err)
		}
	}

	b.reply(msg, sb.String())
}

func (b *Bot) handleInsights(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.reply(msg, "❌ Usage: `/insights SYMBOL`")
		return
	}
	symbol := watchlist.NormalizeSymbol(args[0])

	if !b.ai.Enabled() {
		b.reply(msg, "🤖 AI insights unavailable - no API key configured")
		return
	}

	snap, err := b.market.Indicators(ctx, symbol)
	if err != nil || snap == nil {
		b.reply(msg, fmt.Sprintf("❌ Unable to analyze %s - insufficient data", symbol))
		return
	}

	pos, _ := b.repo.GetBySymbol(symbol)

	insight, err := b.ai.StockInsight(ctx, symbol, snap, pos)
	if err != nil {
		b.logger.Error("stock insight", "symbol", symbol, "error", err)
		b.reply(msg, fmt.Sprintf("❌ Failed to generate insight for %s", symbol))
		return
	}

	b.reply(msg, fmt.Sprintf("🤖 **AI Insight for %s:**\n\n%s", symbol, insight))
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(out); err != nil {
		b.logger.Error("send telegram reply", "error", err)
	}
}
