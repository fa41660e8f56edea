package alert

import (
	"testing"

	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

func TestCheckPortfolioAlertsEmpty(t *testing.T) {
	if alerts := CheckPortfolioAlerts(nil); len(alerts) != 0 {
		t.Fatalf("expected no alerts for empty watchlist, got %d", len(alerts))
	}
}

func TestCheckPortfolioAlertsLoss(t *testing.T) {
	positions := []watchlist.Position{
		{Symbol: "A", BuyPrice: 100, CurrentPrice: 80}, // -20%
		{Symbol: "B", BuyPrice: 100, CurrentPrice: 82}, // -18%
	}
	alerts := CheckPortfolioAlerts(positions)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Kind != KindPortfolioLoss {
		t.Fatalf("expected portfolio loss, got %s", a.Kind)
	}
	if a.Priority != PriorityHigh {
		t.Fatalf("expected HIGH priority, got %s", a.Priority)
	}
	if a.Symbol != PortfolioSymbol {
		t.Fatalf("expected PORTFOLIO symbol, got %s", a.Symbol)
	}
	if a.TriggerValue != -19 {
		t.Fatalf("expected average P&L -19, got %.2f", a.TriggerValue)
	}
}

func TestCheckPortfolioAlertsLowWinRate(t *testing.T) {
	// one winner out of four: win rate 25%, average P&L well above -10%
	positions := []watchlist.Position{
		{Symbol: "A", BuyPrice: 100, CurrentPrice: 110},
		{Symbol: "B", BuyPrice: 100, CurrentPrice: 99},
		{Symbol: "C", BuyPrice: 100, CurrentPrice: 98},
		{Symbol: "D", BuyPrice: 100, CurrentPrice: 97},
	}
	alerts := CheckPortfolioAlerts(positions)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %d", len(alerts))
	}
	if alerts[0].Kind != KindLowWinRate {
		t.Fatalf("expected low winrate, got %s", alerts[0].Kind)
	}
	if alerts[0].Priority != PriorityMedium {
		t.Fatalf("expected MEDIUM priority, got %s", alerts[0].Priority)
	}
}

func TestCheckPortfolioAlertsMutuallyExclusive(t *testing.T) {
	// both conditions hold, only the loss alert fires
	positions := []watchlist.Position{
		{Symbol: "A", BuyPrice: 100, CurrentPrice: 50},
		{Symbol: "B", BuyPrice: 100, CurrentPrice: 60},
	}
	alerts := CheckPortfolioAlerts(positions)
	if len(alerts) != 1 || alerts[0].Kind != KindPortfolioLoss {
		t.Fatalf("expected one portfolio loss alert, got %+v", alerts)
	}
}

func TestCheckPortfolioAlertsSkippedDenominator(t *testing.T) {
	// positions without prices are skipped in the accumulation but still
	// count in the denominator, so one winner of three is a 33% win rate
	// and neither alert fires
	positions := []watchlist.Position{
		{Symbol: "A", BuyPrice: 100, CurrentPrice: 120},
		{Symbol: "B", BuyPrice: 0, CurrentPrice: 0},
		{Symbol: "C", BuyPrice: 0, CurrentPrice: 0},
	}
	if alerts := CheckPortfolioAlerts(positions); len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", alerts)
	}

	// with one more empty record the same winner drops to 25% and the
	// low-winrate alert fires
	positions = append(positions, watchlist.Position{Symbol: "D"})
	alerts := CheckPortfolioAlerts(positions)
	if len(alerts) != 1 || alerts[0].Kind != KindLowWinRate {
		t.Fatalf("expected low winrate from diluted denominator, got %+v", alerts)
	}
}

func TestCheckPortfolioAlertsHealthy(t *testing.T) {
	positions := []watchlist.Position{
		{Symbol: "A", BuyPrice: 100, CurrentPrice: 110},
		{Symbol: "B", BuyPrice: 100, CurrentPrice: 105},
	}
	if alerts := CheckPortfolioAlerts(positions); len(alerts) != 0 {
		t.Fatalf("expected no alerts for a healthy portfolio, got %+v", alerts)
	}
}
