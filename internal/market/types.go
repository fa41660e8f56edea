package market

// Snapshot is a point-in-time bundle of technical indicators for one symbol,
// computed from daily closes. It carries no persisted identity; a fresh one
// is produced each monitoring tick.
type Snapshot struct {
	Symbol            string
	RSI               float64 // 0..100
	MACD              float64
	MACDSignal        float64
	MACDHistogram     float64
	BollingerPosition float64 // 0 = lower band, 1 = upper band
	EMA50             float64
	EMA200            float64
	CurrentPrice      float64
}
