package alert

import (
	"fmt"
	"math"
	"time"

	"github.com/yashtriyar/stock-watchlist-bot/internal/market"
)

const (
	rsiOversold   = 25
	rsiOverbought = 75

	// MACD lines closer than this count as a crossover. This is a
	// proximity check, not a true sign-change detection: no prior-tick
	// state is consulted.
	macdCrossoverBand = 0.1

	bollingerLowerBand = 0.05
	bollingerUpperBand = 0.95

	// EMA50/EMA200 closer than this relative gap (with EMA50 on top)
	// is reported as a fresh golden cross. Recency is inferred purely
	// from the closeness of the two averages.
	goldenCrossGap = 0.02
)

// CheckTechnicalAlerts evaluates indicator-based buy/sell signals for a
// symbol. All rules fire independently; a nil snapshot yields no alerts.
func CheckTechnicalAlerts(symbol string, snap *market.Snapshot) []Alert {
	if snap == nil {
		return nil
	}

	now := time.Now()
	var alerts []Alert

	if snap.RSI <= rsiOversold {
		alerts = append(alerts, Alert{
			Kind:   KindTechnicalBuy,
			Symbol: symbol,
			Message: fmt.Sprintf("📊 TECHNICAL BUY SIGNAL: %s\n"+
				"🔴 RSI: %.1f (Severely Oversold)\n"+
				"💡 Potential bounce opportunity", symbol, snap.RSI),
			TriggerValue: snap.RSI,
			Priority:     PriorityHigh,
			Timestamp:    now,
		})
	} else if snap.RSI >= rsiOverbought {
		alerts = append(alerts, Alert{
			Kind:   KindTechnicalSell,
			Symbol: symbol,
			Message: fmt.Sprintf("📊 TECHNICAL SELL SIGNAL: %s\n"+
				"🔴 RSI: %.1f (Severely Overbought)\n"+
				"⚠️ Correction may be imminent", symbol, snap.RSI),
			TriggerValue: snap.RSI,
			Priority:     PriorityHigh,
			Timestamp:    now,
		})
	}

	if snap.MACD > snap.MACDSignal && math.Abs(snap.MACD-snap.MACDSignal) < macdCrossoverBand {
		alerts = append(alerts, Alert{
			Kind:   KindTechnicalBuy,
			Symbol: symbol,
			Message: fmt.Sprintf("📊 MACD BULLISH CROSSOVER: %s\n"+
				"📈 MACD crossed above signal line\n"+
				"💡 Potential uptrend beginning", symbol),
			TriggerValue: snap.MACD - snap.MACDSignal,
			Priority:     PriorityMedium,
			Timestamp:    now,
		})
	}

	if snap.BollingerPosition <= bollingerLowerBand {
		alerts = append(alerts, Alert{
			Kind:   KindTechnicalBuy,
			Symbol: symbol,
			Message: fmt.Sprintf("📊 BOLLINGER BAND SQUEEZE: %s\n"+
				"📉 Price at lower Bollinger Band\n"+
				"💡 Potential reversal opportunity", symbol),
			TriggerValue: snap.BollingerPosition,
			Priority:     PriorityMedium,
			Timestamp:    now,
		})
	} else if snap.BollingerPosition >= bollingerUpperBand {
		alerts = append(alerts, Alert{
			Kind:   KindTechnicalSell,
			Symbol: symbol,
			Message: fmt.Sprintf("📊 BOLLINGER BAND EXTENSION: %s\n"+
				"📈 Price at upper Bollinger Band\n"+
				"⚠️ Potential pullback ahead", symbol),
			TriggerValue: snap.BollingerPosition,
			Priority:     PriorityMedium,
			Timestamp:    now,
		})
	}

	if snap.EMA200 > 0 && snap.EMA50 > snap.EMA200 {
		gap := (snap.EMA50 - snap.EMA200) / snap.EMA200
		if gap < goldenCrossGap {
			alerts = append(alerts, Alert{
				Kind:   KindTechnicalBuy,
				Symbol: symbol,
				Message: fmt.Sprintf("📊 GOLDEN CROSS DETECTED: %s\n"+
					"🌟 50 EMA crossed above 200 EMA\n"+
					"📈 Long-term bullish signal", symbol),
				TriggerValue: gap,
				Priority:     PriorityHigh,
				Timestamp:    now,
			})
		}
	}

	return alerts
}
