package core

import (
	"context"
	"fmt"

	"devicecore/internal/derive"
	"devicecore/pkg/domain"
)

// NewLowBatteryRule logs devices written with a battery level in the low band.
func NewLowBatteryRule() domain.Rule {
	return lowBatteryRule{}
}

type lowBatteryRule struct{}

func (lowBatteryRule) Name() string { return "low_battery" }

func (lowBatteryRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityDevice || change.Action == domain.ActionDelete {
			continue
		}
		d, ok := change.After.(domain.Device)
		if !ok || derive.ClassifyBattery(d.BatteryLevel) != derive.BatteryLow {
			continue
		}
		res.Violations = append(res.Violations, domain.Violation{
			Rule:     "low_battery",
			Severity: domain.SeverityLog,
			Message:  fmt.Sprintf("device %s at %s battery %d%%", d.ID, d.FacilityName, d.BatteryLevel),
			Entity:   domain.EntityDevice,
			EntityID: d.ID,
		})
	}
	return res, nil
}
