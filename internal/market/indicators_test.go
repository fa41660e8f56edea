package market

import (
	"math"
	"testing"
)

func constantSeries(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func risingSeries(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestRSIExtremes(t *testing.T) {
	if got := rsi(risingSeries(100, 1, 60), 14); got != 100 {
		t.Fatalf("all-gains series must give RSI 100, got %.2f", got)
	}
	if got := rsi(risingSeries(100, -1, 60), 14); got != 0 {
		t.Fatalf("all-losses series must give RSI 0, got %.2f", got)
	}
	if got := rsi(constantSeries(100, 10), 14); got != 50 {
		t.Fatalf("short series must give neutral RSI, got %.2f", got)
	}
}

func TestEMAConstantSeries(t *testing.T) {
	if got := lastEMA(constantSeries(42, 100), 50); math.Abs(got-42) > 1e-9 {
		t.Fatalf("EMA of a constant series must equal the constant, got %.6f", got)
	}
}

func TestMACDConstantSeries(t *testing.T) {
	macdLine, signalLine := macd(constantSeries(100, 80), 12, 26, 9)
	if math.Abs(macdLine) > 1e-9 || math.Abs(signalLine) > 1e-9 {
		t.Fatalf("flat series must give zero MACD, got %.6f / %.6f", macdLine, signalLine)
	}
}

func TestBollingerConstantSeries(t *testing.T) {
	upper, lower := bollinger(constantSeries(100, 60), 20, 2)
	if upper != 100 || lower != 100 {
		t.Fatalf("flat series collapses the bands, got upper %.2f lower %.2f", upper, lower)
	}
}

func TestComputeSnapshotFlatSeries(t *testing.T) {
	snap := computeSnapshot(constantSeries(250, 60))

	if snap.CurrentPrice != 250 {
		t.Fatalf("unexpected current price %.2f", snap.CurrentPrice)
	}
	// collapsed bands fall back to the midpoint
	if snap.BollingerPosition != 0.5 {
		t.Fatalf("expected midpoint Bollinger position, got %.2f", snap.BollingerPosition)
	}
	if math.Abs(snap.EMA50-250) > 1e-9 || math.Abs(snap.EMA200-250) > 1e-9 {
		t.Fatalf("EMAs of a flat series must equal the price, got %.2f / %.2f", snap.EMA50, snap.EMA200)
	}
	if math.Abs(snap.MACDHistogram) > 1e-9 {
		t.Fatalf("flat series must give zero MACD histogram, got %.6f", snap.MACDHistogram)
	}
}

func TestComputeSnapshotTrendDirection(t *testing.T) {
	snap := computeSnapshot(risingSeries(100, 1, 250))

	// the shorter EMA tracks a rising series more closely
	if snap.EMA50 <= snap.EMA200 {
		t.Fatalf("rising series must put EMA50 above EMA200, got %.2f vs %.2f", snap.EMA50, snap.EMA200)
	}
	if snap.RSI != 100 {
		t.Fatalf("strictly rising series must give RSI 100, got %.2f", snap.RSI)
	}
	if snap.MACD <= 0 {
		t.Fatalf("rising series must give positive MACD, got %.4f", snap.MACD)
	}
}

func TestRangeForDays(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{30, "1mo"},
		{90, "3mo"},
		{180, "6mo"},
		{365, "1y"},
	}
	for _, c := range cases {
		if got := rangeForDays(c.days); got != c.want {
			t.Fatalf("rangeForDays(%d) = %q, want %q", c.days, got, c.want)
		}
	}
}
