package alert

import (
	"strings"
	"time"
)

// Kind is the closed set of alert variants. Portfolio-level alerts are
// first-class kinds, not ad-hoc tags.
type Kind string

const (
	KindTargetHit         Kind = "target_hit"
	KindStopLoss          Kind = "stop_loss"
	KindApproachingTarget Kind = "approaching_target"
	KindApproachingStop   Kind = "approaching_stop"
	KindTechnicalBuy      Kind = "technical_buy"
	KindTechnicalSell     Kind = "technical_sell"
	KindPortfolioLoss     Kind = "portfolio_loss"
	KindLowWinRate        Kind = "low_winrate"
)

// Title renders the kind for human-facing summaries: underscores become
// spaces, words are title-cased.
func (k Kind) Title() string {
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Alert is a single alert-worthy event. Alerts are immutable after creation.
type Alert struct {
	Kind         Kind
	Symbol       string
	Message      string
	TriggerValue float64
	Priority     Priority
	Timestamp    time.Time
}
