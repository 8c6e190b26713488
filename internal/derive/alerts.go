package derive

import (
	"slices"

	"devicecore/pkg/domain"
)

// DefaultAlertSummaryLimit caps OpenAlertsSummary.
const DefaultAlertSummaryLimit = 5

// OpenAlertsSummary returns up to limit Open alerts in input order. A
// non-positive limit uses the default.
func OpenAlertsSummary(alerts []domain.Alert, limit int) []domain.Alert {
	if limit <= 0 {
		limit = DefaultAlertSummaryLimit
	}
	out := make([]domain.Alert, 0, limit)
	for _, a := range alerts {
		if len(out) == limit {
			break
		}
		if a.Status == domain.AlertOpen {
			out = append(out, a)
		}
	}
	return out
}

// AlertsByStatus filters alerts by status, keeping input order.
func AlertsByStatus(alerts []domain.Alert, status domain.AlertStatus) []domain.Alert {
	out := make([]domain.Alert, 0)
	for _, a := range alerts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// AlertCounts tallies alerts per handling status.
type AlertCounts struct {
	Open         int `json:"open"`
	Acknowledged int `json:"acknowledged"`
	Resolved     int `json:"resolved"`
}

// AlertStatusCounts counts alerts per status.
func AlertStatusCounts(alerts []domain.Alert) AlertCounts {
	var c AlertCounts
	for _, a := range alerts {
		switch a.Status {
		case domain.AlertOpen:
			c.Open++
		case domain.AlertAcknowledged:
			c.Acknowledged++
		case domain.AlertResolved:
			c.Resolved++
		}
	}
	return c
}

// SortBySeverity returns a copy of alerts ordered Critical first. Equal
// severities keep input order.
func SortBySeverity(alerts []domain.Alert) []domain.Alert {
	out := slices.Clone(alerts)
	slices.SortStableFunc(out, func(a, b domain.Alert) int {
		return b.Severity.Rank() - a.Severity.Rank()
	})
	return out
}
