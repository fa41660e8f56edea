package alert

import (
	"fmt"
	"time"

	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

// approachBuffer is the band around target/stop levels that triggers an
// early warning: within 5% below the target, or 5% above the stop.
const approachBuffer = 0.05

// CheckPriceAlerts evaluates one position against its target and stop-loss
// levels. Exact hits and "approaching" warnings are separate tiers; each
// tier is mutually exclusive within itself but independent of the other.
// A position with any missing price yields no alerts.
func CheckPriceAlerts(pos watchlist.Position) []Alert {
	if pos.CurrentPrice == 0 || pos.TargetPrice == 0 || pos.StopLoss == 0 || pos.BuyPrice == 0 {
		return nil
	}

	now := time.Now()
	var alerts []Alert

	if pos.CurrentPrice >= pos.TargetPrice {
		profit := (pos.CurrentPrice - pos.BuyPrice) / pos.BuyPrice * 100
		alerts = append(alerts, Alert{
			Kind:   KindTargetHit,
			Symbol: pos.Symbol,
			Message: fmt.Sprintf("🎯 TARGET HIT: %s reached ₹%.2f (Target: ₹%.2f)\n"+
				"💰 Profit: +%.1f%%\n"+
				"💡 Consider taking profits or adjusting stop-loss",
				pos.Symbol, pos.CurrentPrice, pos.TargetPrice, profit),
			TriggerValue: pos.TargetPrice,
			Priority:     PriorityHigh,
			Timestamp:    now,
		})
	} else if pos.CurrentPrice <= pos.StopLoss {
		loss := (pos.CurrentPrice - pos.BuyPrice) / pos.BuyPrice * 100
		alerts = append(alerts, Alert{
			Kind:   KindStopLoss,
			Symbol: pos.Symbol,
			Message: fmt.Sprintf("🛑 STOP LOSS HIT: %s dropped to ₹%.2f (Stop: ₹%.2f)\n"+
				"📉 Loss: %.1f%%\n"+
				"⚠️ Consider exiting position to limit losses",
				pos.Symbol, pos.CurrentPrice, pos.StopLoss, loss),
			TriggerValue: pos.StopLoss,
			Priority:     PriorityCritical,
			Timestamp:    now,
		})
	}

	targetBuffer := pos.TargetPrice * (1 - approachBuffer)
	stopBuffer := pos.StopLoss * (1 + approachBuffer)

	if targetBuffer <= pos.CurrentPrice && pos.CurrentPrice < pos.TargetPrice {
		alerts = append(alerts, Alert{
			Kind:   KindApproachingTarget,
			Symbol: pos.Symbol,
			Message: fmt.Sprintf("📈 APPROACHING TARGET: %s at ₹%.2f\n"+
				"🎯 Target: ₹%.2f (95%% reached)\n"+
				"💡 Monitor closely for exit opportunity",
				pos.Symbol, pos.CurrentPrice, pos.TargetPrice),
			TriggerValue: targetBuffer,
			Priority:     PriorityMedium,
			Timestamp:    now,
		})
	} else if pos.StopLoss < pos.CurrentPrice && pos.CurrentPrice <= stopBuffer {
		alerts = append(alerts, Alert{
			Kind:   KindApproachingStop,
			Symbol: pos.Symbol,
			Message: fmt.Sprintf("⚠️ APPROACHING STOP LOSS: %s at ₹%.2f\n"+
				"🛑 Stop Loss: ₹%.2f\n"+
				"📊 Consider technical analysis for trend reversal",
				pos.Symbol, pos.CurrentPrice, pos.StopLoss),
			TriggerValue: stopBuffer,
			Priority:     PriorityMedium,
			Timestamp:    now,
		})
	}

	return alerts
}
