package watchlist

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return NewRepository(db)
}

func TestAddAndGet(t *testing.T) {
	repo := newTestRepo(t)

	pos := &Position{Symbol: "reliance.ns", BuyPrice: 2500, TargetPrice: 2800, StopLoss: 2350}
	if err := repo.Add(pos); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if pos.Symbol != "RELIANCE" {
		t.Fatalf("expected normalized symbol RELIANCE, got %s", pos.Symbol)
	}

	got, err := repo.GetBySymbol("RELIANCE")
	if err != nil {
		t.Fatalf("GetBySymbol returned error: %v", err)
	}
	if got.BuyPrice != 2500 || got.TargetPrice != 2800 {
		t.Fatalf("unexpected position: %+v", got)
	}
}

func TestAddValidation(t *testing.T) {
	repo := newTestRepo(t)

	cases := []Position{
		{Symbol: "A", BuyPrice: 100, TargetPrice: 90, StopLoss: 80},   // target below buy
		{Symbol: "B", BuyPrice: 100, TargetPrice: 120, StopLoss: 110}, // stop above buy
		{Symbol: "C", BuyPrice: 0, TargetPrice: 120, StopLoss: 90},    // missing buy
		{Symbol: "", BuyPrice: 100, TargetPrice: 120, StopLoss: 90},   // missing symbol
	}
	for i := range cases {
		if err := repo.Add(&cases[i]); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, cases[i])
		}
	}
}

func TestAddDuplicate(t *testing.T) {
	repo := newTestRepo(t)

	pos := Position{Symbol: "TCS", BuyPrice: 3500, TargetPrice: 4000, StopLoss: 3200}
	first := pos
	if err := repo.Add(&first); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	second := pos
	if err := repo.Add(&second); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	repo := newTestRepo(t)

	pos := &Position{Symbol: "INFY", BuyPrice: 1500, TargetPrice: 1700, StopLoss: 1400}
	if err := repo.Add(pos); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := repo.Remove("infy"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := repo.GetBySymbol("INFY"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
	if err := repo.Remove("INFY"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second removal, got %v", err)
	}
}

func TestUpdatePrice(t *testing.T) {
	repo := newTestRepo(t)

	pos := &Position{Symbol: "HDFC", BuyPrice: 1500, TargetPrice: 1800, StopLoss: 1400}
	if err := repo.Add(pos); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := repo.UpdatePrice("HDFC", 1650); err != nil {
		t.Fatalf("UpdatePrice returned error: %v", err)
	}
	got, err := repo.GetBySymbol("HDFC")
	if err != nil {
		t.Fatalf("GetBySymbol returned error: %v", err)
	}
	if got.CurrentPrice != 1650 {
		t.Fatalf("expected current price 1650, got %.2f", got.CurrentPrice)
	}

	if err := repo.UpdatePrice("UNKNOWN", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown symbol, got %v", err)
	}
}

func TestBulkUpdatePrices(t *testing.T) {
	repo := newTestRepo(t)

	for _, p := range []Position{
		{Symbol: "AAA", BuyPrice: 100, TargetPrice: 120, StopLoss: 90},
		{Symbol: "BBB", BuyPrice: 200, TargetPrice: 250, StopLoss: 180},
	} {
		pos := p
		if err := repo.Add(&pos); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	err := repo.BulkUpdatePrices(map[string]float64{"AAA": 111, "BBB": 222})
	if err != nil {
		t.Fatalf("BulkUpdatePrices returned error: %v", err)
	}

	a, _ := repo.GetBySymbol("AAA")
	b, _ := repo.GetBySymbol("BBB")
	if a.CurrentPrice != 111 || b.CurrentPrice != 222 {
		t.Fatalf("unexpected prices: %.2f / %.2f", a.CurrentPrice, b.CurrentPrice)
	}
}

func TestPnLPercent(t *testing.T) {
	p := Position{BuyPrice: 100, CurrentPrice: 125}
	if got := p.PnLPercent(); got != 25 {
		t.Fatalf("expected 25%%, got %.2f", got)
	}
	if got := (Position{BuyPrice: 0, CurrentPrice: 125}).PnLPercent(); got != 0 {
		t.Fatalf("missing buy price must give 0, got %.2f", got)
	}
}
