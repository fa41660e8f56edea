package watchlist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("symbol not in watchlist")
	ErrAlreadyExists = errors.New("symbol already in watchlist")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NormalizeSymbol uppercases a ticker and strips exchange suffixes.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.TrimSuffix(s, ".NS")
	s = strings.TrimSuffix(s, ".BO")
	return s
}

func validate(p *Position) error {
	if p.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if p.BuyPrice <= 0 || p.TargetPrice <= 0 || p.StopLoss <= 0 {
		return fmt.Errorf("buy, target and stop prices must be positive")
	}
	if p.TargetPrice <= p.BuyPrice {
		return fmt.Errorf("target price must be higher than buy price")
	}
	if p.StopLoss >= p.BuyPrice {
		return fmt.Errorf("stop loss must be lower than buy price")
	}
	return nil
}

func (r *Repository) Add(p *Position) error {
	p.Symbol = NormalizeSymbol(p.Symbol)
	if err := validate(p); err != nil {
		return err
	}
	if existing, err := r.GetBySymbol(p.Symbol); err == nil && existing != nil {
		return ErrAlreadyExists
	}
	return r.db.Create(p).Error
}

func (r *Repository) Remove(symbol string) error {
	symbol = NormalizeSymbol(symbol)
	res := r.db.Where("symbol = ?", symbol).Delete(&Position{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetAll() ([]Position, error) {
	var positions []Position
	err := r.db.Order("symbol").Find(&positions).Error
	return positions, err
}

func (r *Repository) GetBySymbol(symbol string) (*Position, error) {
	symbol = NormalizeSymbol(symbol)
	var p Position
	err := r.db.Where("symbol = ?", symbol).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) UpdatePrice(symbol string, price float64) error {
	symbol = NormalizeSymbol(symbol)
	res := r.db.Model(&Position{}).Where("symbol = ?", symbol).
		Updates(map[string]any{"current_price": price, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) BulkUpdatePrices(prices map[string]float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for symbol, price := range prices {
			if err := tx.Model(&Position{}).Where("symbol = ?", NormalizeSymbol(symbol)).
				Update("current_price", price).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
