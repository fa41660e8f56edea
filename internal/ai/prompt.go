package ai

import (
	"fmt"
	"strings"

	"github.com/yashtriyar/stock-watchlist-bot/internal/market"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

const systemPrompt = `You are a professional stock market assistant with expertise in
technical analysis for Indian equities (NSE). Give clear, actionable
commentary. Never invent data; reason only from the numbers provided.
Keep every answer under 200 words.`

func BuildStockPrompt(symbol string, snap *market.Snapshot, pos *watchlist.Position) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Analyze the stock: %s\n\n", symbol))
	sb.WriteString("Technical indicators:\n")
	sb.WriteString(fmt.Sprintf("- Current price: ₹%.2f\n", snap.CurrentPrice))
	sb.WriteString(fmt.Sprintf("- RSI(14): %.1f\n", snap.RSI))
	sb.WriteString(fmt.Sprintf("- MACD: %.3f / signal %.3f (histogram %.3f)\n",
		snap.MACD, snap.MACDSignal, snap.MACDHistogram))
	sb.WriteString(fmt.Sprintf("- Bollinger position: %.2f (0=lower band, 1=upper band)\n",
		snap.BollingerPosition))
	sb.WriteString(fmt.Sprintf("- EMA50: %.2f, EMA200: %.2f\n", snap.EMA50, snap.EMA200))

	if pos != nil {
		sb.WriteString("\nOpen position:\n")
		sb.WriteString(fmt.Sprintf("- Buy ₹%.2f, target ₹%.2f, stop ₹%.2f, P&L %+.1f%%\n",
			pos.BuyPrice, pos.TargetPrice, pos.StopLoss, pos.PnLPercent()))
	}

	sb.WriteString("\nProvide a concise actionable insight (maximum 4 lines):\n")
	sb.WriteString("- Clear Buy/Sell/Hold recommendation with confidence level\n")
	sb.WriteString("- Primary reason from the technical patterns\n")
	sb.WriteString("- Short-term outlook (next 1-2 weeks)\n")
	sb.WriteString("- One key risk or opportunity to watch")

	return sb.String()
}

func BuildPortfolioPrompt(positions []watchlist.Position) string {
	var sb strings.Builder

	winners, losers := 0, 0
	sb.WriteString("Portfolio performance:\n")
	for _, p := range positions {
		if p.BuyPrice <= 0 || p.CurrentPrice <= 0 {
			continue
		}
		pnl := p.PnLPercent()
		sb.WriteString(fmt.Sprintf("%s: %+.1f%%\n", p.Symbol, pnl))
		if pnl > 0 {
			winners++
		} else {
			losers++
		}
	}

	sb.WriteString(fmt.Sprintf("\nWinners: %d stocks\nLosers: %d stocks\n\n", winners, losers))
	sb.WriteString("Provide a brief portfolio analysis (maximum 5 lines):\n")
	sb.WriteString("- Overall portfolio health assessment\n")
	sb.WriteString("- Sector diversification comment if patterns visible\n")
	sb.WriteString("- Risk management observation\n")
	sb.WriteString("- One actionable recommendation for the portfolio")

	return sb.String()
}
