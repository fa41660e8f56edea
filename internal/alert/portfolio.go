package alert

import (
	"fmt"
	"time"

	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

// PortfolioSymbol tags portfolio-wide alerts in place of a ticker.
const PortfolioSymbol = "PORTFOLIO"

const (
	portfolioLossThreshold = -10 // average P&L percent
	lowWinRateThreshold    = 30  // percent
)

// CheckPortfolioAlerts evaluates the watchlist as a whole and emits at most
// one alert. Positions with missing prices are skipped when accumulating
// P&L and win counts, but still count in the denominator; both averages are
// computed over the full list.
func CheckPortfolioAlerts(positions []watchlist.Position) []Alert {
	if len(positions) == 0 {
		return nil
	}

	total := len(positions)
	profitable := 0
	var sumPnl float64

	for _, p := range positions {
		if p.BuyPrice <= 0 || p.CurrentPrice <= 0 {
			continue
		}
		pnl := (p.CurrentPrice - p.BuyPrice) / p.BuyPrice * 100
		sumPnl += pnl
		if pnl > 0 {
			profitable++
		}
	}

	avgPnl := sumPnl / float64(total)
	winRate := float64(profitable) / float64(total) * 100

	if avgPnl <= portfolioLossThreshold {
		return []Alert{{
			Kind:   KindPortfolioLoss,
			Symbol: PortfolioSymbol,
			Message: fmt.Sprintf("📉 **PORTFOLIO ALERT**\n"+
				"Average Loss: %.1f%%\n"+
				"Win Rate: %.1f%%\n"+
				"🔍 Review positions for risk management", avgPnl, winRate),
			TriggerValue: avgPnl,
			Priority:     PriorityHigh,
			Timestamp:    time.Now(),
		}}
	}

	if winRate < lowWinRateThreshold {
		return []Alert{{
			Kind:   KindLowWinRate,
			Symbol: PortfolioSymbol,
			Message: fmt.Sprintf("⚠️ **LOW WIN RATE ALERT**\n"+
				"Win Rate: %.1f%%\n"+
				"Profitable: %d/%d\n"+
				"💡 Consider strategy review", winRate, profitable, total),
			TriggerValue: winRate,
			Priority:     PriorityMedium,
			Timestamp:    time.Now(),
		}}
	}

	return nil
}
