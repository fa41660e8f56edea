package market

import (
	"context"
	"fmt"
	"math"

	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

// minHistoryBars is the minimum number of daily closes needed before
// indicators are considered meaningful.
const minHistoryBars = 50

// Indicators fetches history for a symbol and computes a fresh snapshot.
// Returns nil (no error) when there is not enough history; callers treat a
// nil snapshot as "no technical signal this tick".
func (c *Client) Indicators(ctx context.Context, symbol string) (*Snapshot, error) {
	symbol = watchlist.NormalizeSymbol(symbol)

	closes, err := c.DailyCloses(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("indicators for %s: %w", symbol, err)
	}
	if len(closes) < minHistoryBars {
		return nil, nil
	}

	snap := computeSnapshot(closes)
	snap.Symbol = symbol
	return snap, nil
}

func computeSnapshot(closes []float64) *Snapshot {
	price := closes[len(closes)-1]

	macdLine, signalLine := macd(closes, 12, 26, 9)
	upper, lower := bollinger(closes, 20, 2)

	bbPosition := 0.5
	if upper > lower {
		bbPosition = (price - lower) / (upper - lower)
	}

	// EMA200 window clamps to the series length on short histories
	longWindow := 200
	if len(closes) < longWindow {
		longWindow = len(closes)
	}

	return &Snapshot{
		RSI:               rsi(closes, 14),
		MACD:              macdLine,
		MACDSignal:        signalLine,
		MACDHistogram:     macdLine - signalLine,
		BollingerPosition: bbPosition,
		EMA50:             lastEMA(closes, 50),
		EMA200:            lastEMA(closes, longWindow),
		CurrentPrice:      price,
	}
}

// emaSeries computes the exponential moving average of values, seeded with
// the first value (ewm adjust=false convention).
func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(period) + 1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

func lastEMA(values []float64, period int) float64 {
	s := emaSeries(values, period)
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// rsi computes the Wilder-smoothed relative strength index of the last bar.
func rsi(values []float64, period int) float64 {
	if len(values) <= period {
		return 50
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// macd returns the MACD line and its signal line for the last bar.
func macd(values []float64, fast, slow, signal int) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	fastEMA := emaSeries(values, fast)
	slowEMA := emaSeries(values, slow)

	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := emaSeries(macdLine, signal)

	return macdLine[len(macdLine)-1], signalLine[len(signalLine)-1]
}

// bollinger returns the upper and lower bands (SMA ± k standard deviations)
// over the trailing window.
func bollinger(values []float64, period int, k float64) (float64, float64) {
	if len(values) < period {
		period = len(values)
	}
	if period == 0 {
		return 0, 0
	}
	window := values[len(values)-period:]

	var sum float64
	for _, v := range window {
		sum += v
	}
	mean := sum / float64(period)

	var variance float64
	for _, v := range window {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(period))

	return mean + k*std, mean - k*std
}
