package telegram

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yashtriyar/stock-watchlist-bot/internal/alert"
	"github.com/yashtriyar/stock-watchlist-bot/internal/config"
	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
)

// pause between consecutive alert messages, Telegram rate limiting
const sendDelay = time.Second

type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram notifier connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

// DeliverAlerts sends a deduplicated batch to the configured chat. CRITICAL
// and HIGH alerts go out as individual messages; the remainder is collapsed
// into one summary.
func (n *Notifier) DeliverAlerts(alerts []alert.Alert) {
	if len(alerts) == 0 {
		return
	}

	var urgent, rest []alert.Alert
	for _, a := range alerts {
		switch a.Priority {
		case alert.PriorityCritical, alert.PriorityHigh:
			urgent = append(urgent, a)
		default:
			rest = append(rest, a)
		}
	}

	for i, a := range urgent {
		if i > 0 {
			time.Sleep(sendDelay)
		}
		n.Send(alert.RenderSingle(a))
	}

	if len(rest) > 0 {
		if len(urgent) > 0 {
			time.Sleep(sendDelay)
		}
		n.Send(alert.RenderSummary(rest))
	}
}

func (n *Notifier) Send(text string) {
	if !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}
