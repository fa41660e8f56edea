package alert

import (
	"fmt"
	"strings"
)

var priorityMarker = map[Priority]string{
	PriorityCritical: "🚨",
	PriorityHigh:     "❗",
	PriorityMedium:   "⚠️",
	PriorityLow:      "ℹ️",
}

func markerFor(p Priority) string {
	if m, ok := priorityMarker[p]; ok {
		return m
	}
	return priorityMarker[PriorityLow]
}

// RenderSingle formats one alert for delivery.
func RenderSingle(a Alert) string {
	return fmt.Sprintf("%s **ALERT** - %s\n\n%s",
		markerFor(a.Priority), a.Timestamp.Format("15:04:05"), a.Message)
}

// RenderSummary groups alerts by priority into one digest message. LOW
// alerts are not listed; an empty input yields a fixed sentence.
func RenderSummary(alerts []Alert) string {
	if len(alerts) == 0 {
		return "No alerts at this time."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 **Alert Summary** (%d alerts)\n\n", len(alerts)))

	buckets := []Priority{PriorityCritical, PriorityHigh, PriorityMedium}
	for _, prio := range buckets {
		var group []Alert
		for _, a := range alerts {
			if a.Priority == prio {
				group = append(group, a)
			}
		}
		if len(group) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s **%s (%d):**\n", markerFor(prio), prio, len(group)))
		for _, a := range group {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", a.Symbol, a.Kind.Title()))
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}
