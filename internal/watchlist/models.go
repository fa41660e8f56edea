package watchlist

import "time"

// Position is one watched stock with its entry and exit levels.
type Position struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Symbol       string  `gorm:"uniqueIndex;not null" json:"symbol"`
	BuyPrice     float64 `gorm:"not null" json:"buy_price"`
	TargetPrice  float64 `gorm:"not null" json:"target_price"`
	StopLoss     float64 `gorm:"not null" json:"stop_loss"`
	CurrentPrice float64 `json:"current_price"`
	Notes        string  `json:"notes"`
}

// PnLPercent returns the unrealized profit/loss in percent, or 0 when
// either price is missing.
func (p Position) PnLPercent() float64 {
	if p.BuyPrice <= 0 || p.CurrentPrice <= 0 {
		return 0
	}
	return (p.CurrentPrice - p.BuyPrice) / p.BuyPrice * 100
}
