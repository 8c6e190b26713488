package derive

import "devicecore/pkg/domain"

// DefaultExpiryWindowDays is the look-ahead used by ExpiringContracts.
const DefaultExpiryWindowDays = 30

// InExpiryWindow reports whether end falls within [today, today+windowDays].
// A zero end date is never in the window.
func InExpiryWindow(end, today domain.Date, windowDays int) bool {
	if end.IsZero() {
		return false
	}
	return !end.Before(today) && !end.After(today.AddDays(windowDays))
}

// ExpiringContracts returns contracts whose end date lies in the expiry
// window, in input order. The stored status is ignored: an Active contract
// already past its end date is excluded. A non-positive windowDays uses the
// default.
func ExpiringContracts(contracts []domain.Contract, today domain.Date, windowDays int) []domain.Contract {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	out := make([]domain.Contract, 0)
	for _, c := range contracts {
		if InExpiryWindow(c.EndDate, today, windowDays) {
			out = append(out, c)
		}
	}
	return out
}

// ContractWindowStatus derives the status a contract's end date implies.
// Contracts without an end date are Active.
func ContractWindowStatus(c domain.Contract, today domain.Date, windowDays int) domain.ContractStatus {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	switch {
	case c.EndDate.IsZero():
		return domain.ContractActive
	case c.EndDate.Before(today):
		return domain.ContractExpired
	case InExpiryWindow(c.EndDate, today, windowDays):
		return domain.ContractExpiringSoon
	default:
		return domain.ContractActive
	}
}

// StatusDrift pairs a contract with the status its dates imply when the two
// disagree.
type StatusDrift struct {
	Contract domain.Contract
	Derived  domain.ContractStatus
}

// ContractStatusDrift lists contracts whose stored status differs from
// ContractWindowStatus. Nothing is corrected.
func ContractStatusDrift(contracts []domain.Contract, today domain.Date, windowDays int) []StatusDrift {
	var out []StatusDrift
	for _, c := range contracts {
		if derived := ContractWindowStatus(c, today, windowDays); derived != c.Status {
			out = append(out, StatusDrift{Contract: c, Derived: derived})
		}
	}
	return out
}
