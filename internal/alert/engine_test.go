package alert

import (
	"fmt"
	"testing"
	"time"
)

func newTestEngine(now *time.Time) *Engine {
	e := NewEngine(time.Hour, 100)
	e.now = func() time.Time { return *now }
	return e
}

func testAlert(symbol string, kind Kind, ts time.Time) Alert {
	return Alert{
		Kind:      kind,
		Symbol:    symbol,
		Message:   "test",
		Priority:  PriorityHigh,
		Timestamp: ts,
	}
}

func TestAdmitCooldownSuppression(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(&now)

	first := e.Admit([]Alert{testAlert("AAPL", KindTargetHit, now)})
	if len(first) != 1 {
		t.Fatalf("first admit: expected 1 alert, got %d", len(first))
	}

	// same (symbol, kind) 30 minutes later: suppressed
	now = now.Add(30 * time.Minute)
	second := e.Admit([]Alert{testAlert("AAPL", KindTargetHit, now)})
	if len(second) != 0 {
		t.Fatalf("expected suppression within cooldown, got %d alerts", len(second))
	}

	// past the cooldown: admitted again
	now = now.Add(31 * time.Minute)
	third := e.Admit([]Alert{testAlert("AAPL", KindTargetHit, now)})
	if len(third) != 1 {
		t.Fatalf("expected re-admission after cooldown, got %d alerts", len(third))
	}
}

func TestAdmitDifferentKeysPass(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(&now)

	batch := []Alert{
		testAlert("AAPL", KindTargetHit, now),
		testAlert("AAPL", KindTechnicalBuy, now), // different kind
		testAlert("TSLA", KindTargetHit, now),    // different symbol
	}
	admitted := e.Admit(batch)
	if len(admitted) != 3 {
		t.Fatalf("expected all 3 distinct alerts admitted, got %d", len(admitted))
	}
}

func TestAdmitInBatchDuplicates(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(&now)

	batch := []Alert{
		testAlert("AAPL", KindTargetHit, now),
		testAlert("AAPL", KindTargetHit, now),
	}
	admitted := e.Admit(batch)
	if len(admitted) != 1 {
		t.Fatalf("expected in-batch duplicate suppressed, got %d alerts", len(admitted))
	}
}

func TestAdmitPreservesOrder(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(&now)

	batch := []Alert{
		testAlert("C", KindStopLoss, now),
		testAlert("A", KindTargetHit, now),
		testAlert("B", KindTechnicalBuy, now),
	}
	admitted := e.Admit(batch)
	if len(admitted) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(admitted))
	}
	for i, want := range []string{"C", "A", "B"} {
		if admitted[i].Symbol != want {
			t.Fatalf("output order changed: position %d is %s, want %s", i, admitted[i].Symbol, want)
		}
	}
}

func TestHistoryBound(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(&now)

	var batch []Alert
	for i := 0; i < 150; i++ {
		batch = append(batch, testAlert(fmt.Sprintf("S%03d", i), KindTargetHit, now))
	}
	admitted := e.Admit(batch)
	if len(admitted) != 150 {
		t.Fatalf("expected 150 distinct alerts admitted, got %d", len(admitted))
	}
	if len(e.history) != 100 {
		t.Fatalf("expected history truncated to 100, got %d", len(e.history))
	}

	// oldest entries were evicted first: S000..S049 fell out, so S000 can
	// re-fire despite the cooldown
	refire := e.Admit([]Alert{testAlert("S000", KindTargetHit, now)})
	if len(refire) != 1 {
		t.Fatalf("expected evicted alert to re-fire, got %d", len(refire))
	}
	// the newest entry is still inside the window
	blocked := e.Admit([]Alert{testAlert("S149", KindTargetHit, now)})
	if len(blocked) != 0 {
		t.Fatalf("expected retained alert still suppressed, got %d", len(blocked))
	}
}

func TestRecentNewestFirst(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	e := newTestEngine(&now)

	e.Admit([]Alert{
		testAlert("A", KindTargetHit, now),
		testAlert("B", KindStopLoss, now),
		testAlert("C", KindTechnicalBuy, now),
	})

	recent := e.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(recent))
	}
	if recent[0].Symbol != "C" || recent[1].Symbol != "B" {
		t.Fatalf("expected newest first (C, B), got (%s, %s)", recent[0].Symbol, recent[1].Symbol)
	}

	if got := e.Recent(10); len(got) != 3 {
		t.Fatalf("Recent must clamp to history length, got %d", len(got))
	}
}
