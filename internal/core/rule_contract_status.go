package core

import (
	"context"
	"fmt"

	"devicecore/internal/derive"
	"devicecore/pkg/domain"
)

// NewContractStatusDriftRule warns when a written contract carries a stored
// status that disagrees with its end date. Stored statuses are never
// rewritten. A non-positive window uses the default expiry window.
func NewContractStatusDriftRule(windowDays int) domain.Rule {
	if windowDays <= 0 {
		windowDays = derive.DefaultExpiryWindowDays
	}
	return contractStatusDriftRule{windowDays: windowDays}
}

type contractStatusDriftRule struct {
	windowDays int
}

func (contractStatusDriftRule) Name() string { return "contract_status_drift" }

func (r contractStatusDriftRule) Evaluate(ctx context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	today := todayFrom(ctx)
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityContract || change.Action == domain.ActionDelete {
			continue
		}
		c, ok := change.After.(domain.Contract)
		if !ok {
			continue
		}
		expected := derive.ContractWindowStatus(c, today, r.windowDays)
		if expected == c.Status {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     r.Name(),
			Severity: domain.SeverityWarn,
			Message:  fmt.Sprintf("contract %s ends %s: stored status %q, expected %q", c.ID, c.EndDate, c.Status, expected),
			Entity:   domain.EntityContract,
			EntityID: c.ID,
		})
	}
	return res, nil
}
