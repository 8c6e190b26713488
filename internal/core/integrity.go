package core

import (
	"fmt"
	"math"

	"devicecore/internal/derive"
	"devicecore/pkg/domain"
)

// IntegrityGuard validates a mutation against the state it would be applied
// to. Checks run in a fixed order and the first failure is returned: required
// fields, enum variants, numeric ranges, foreign keys, then dependents on
// delete. Nothing is written.
type IntegrityGuard struct {
	view TransactionView
}

// NewIntegrityGuard validates against view.
func NewIntegrityGuard(view TransactionView) IntegrityGuard {
	return IntegrityGuard{view: view}
}

// ValidateCreate checks a record about to be created.
func (g IntegrityGuard) ValidateCreate(entity EntityType, record any) error {
	return g.validate(entity, record)
}

// ValidateUpdate checks a full replacement record. Callers look up the
// target id first and report NotFound before any field is validated.
func (g IntegrityGuard) ValidateUpdate(entity EntityType, record any) error {
	return g.validate(entity, record)
}

// ValidateDelete refuses to remove a parent that still has dependents.
func (g IntegrityGuard) ValidateDelete(entity EntityType, id string) error {
	switch entity {
	case EntityFacility:
		if n := derive.FacilityDeviceCount(g.view.ListDevices(), id); n > 0 {
			return domain.DependentRecordsExist(EntityFacility, id, EntityDevice, n)
		}
	case EntityDevice:
		for _, dep := range []struct {
			entity EntityType
			count  int
		}{
			{EntityInstallation, countByDevice(g.view.ListInstallations(), id, func(i Installation) string { return i.DeviceID })},
			{EntityServiceVisit, countByDevice(g.view.ListServiceVisits(), id, func(v ServiceVisit) string { return v.DeviceID })},
			{EntityContract, countByDevice(g.view.ListContracts(), id, func(c Contract) string { return c.DeviceID })},
			{EntityAlert, countByDevice(g.view.ListAlerts(), id, func(a Alert) string { return a.DeviceID })},
		} {
			if dep.count > 0 {
				return domain.DependentRecordsExist(EntityDevice, id, dep.entity, dep.count)
			}
		}
	}
	return nil
}

func (g IntegrityGuard) validate(entity EntityType, record any) error {
	switch r := record.(type) {
	case Facility:
		if entity == EntityFacility {
			return g.checkFacility(r)
		}
	case Device:
		if entity == EntityDevice {
			return g.checkDevice(r)
		}
	case Installation:
		if entity == EntityInstallation {
			return g.checkInstallation(r)
		}
	case ServiceVisit:
		if entity == EntityServiceVisit {
			return g.checkServiceVisit(r)
		}
	case Contract:
		if entity == EntityContract {
			return g.checkContract(r)
		}
	case Alert:
		if entity == EntityAlert {
			return g.checkAlert(r)
		}
	}
	return fmt.Errorf("integrity: %T is not a %s record", record, entity)
}

func (g IntegrityGuard) checkFacility(f Facility) error {
	if err := required(EntityFacility, f.ID, "id", f.ID); err != nil {
		return err
	}
	return required(EntityFacility, f.ID, "name", f.Name)
}

func (g IntegrityGuard) checkDevice(d Device) error {
	for _, field := range []struct{ name, value string }{
		{"id", d.ID}, {"type", d.Type}, {"facility_id", d.FacilityID},
	} {
		if err := required(EntityDevice, d.ID, field.name, field.value); err != nil {
			return err
		}
	}
	if !d.Status.Valid() {
		return domain.InvalidEnum(EntityDevice, d.ID, "status", d.Status)
	}
	if d.AMCStatus != "" && !d.AMCStatus.Valid() {
		return domain.InvalidEnum(EntityDevice, d.ID, "amc_status", d.AMCStatus)
	}
	if d.CMCStatus != "" && !d.CMCStatus.Valid() {
		return domain.InvalidEnum(EntityDevice, d.ID, "cmc_status", d.CMCStatus)
	}
	if d.BatteryLevel < 0 || d.BatteryLevel > 100 {
		return domain.OutOfRange(EntityDevice, d.ID, "battery_level", d.BatteryLevel)
	}
	if _, ok := g.view.FindFacility(d.FacilityID); !ok {
		return domain.DanglingReference(EntityDevice, d.ID, "facility_id", EntityFacility, d.FacilityID)
	}
	return nil
}

func (g IntegrityGuard) checkInstallation(i Installation) error {
	if err := g.requireDeviceRef(EntityInstallation, i.ID, i.DeviceID); err != nil {
		return err
	}
	if !i.Status.Valid() {
		return domain.InvalidEnum(EntityInstallation, i.ID, "status", i.Status)
	}
	return g.deviceExists(EntityInstallation, i.ID, i.DeviceID)
}

func (g IntegrityGuard) checkServiceVisit(v ServiceVisit) error {
	if err := g.requireDeviceRef(EntityServiceVisit, v.ID, v.DeviceID); err != nil {
		return err
	}
	if !v.Purpose.Valid() {
		return domain.InvalidEnum(EntityServiceVisit, v.ID, "purpose", v.Purpose)
	}
	if !v.Status.Valid() {
		return domain.InvalidEnum(EntityServiceVisit, v.ID, "status", v.Status)
	}
	if !nonNegative(v.TimeSpent) {
		return domain.OutOfRange(EntityServiceVisit, v.ID, "time_spent", v.TimeSpent)
	}
	return g.deviceExists(EntityServiceVisit, v.ID, v.DeviceID)
}

func (g IntegrityGuard) checkContract(c Contract) error {
	if err := g.requireDeviceRef(EntityContract, c.ID, c.DeviceID); err != nil {
		return err
	}
	if !c.ContractType.Valid() {
		return domain.InvalidEnum(EntityContract, c.ID, "contract_type", c.ContractType)
	}
	if !c.Status.Valid() {
		return domain.InvalidEnum(EntityContract, c.ID, "status", c.Status)
	}
	if !nonNegative(c.Value) {
		return domain.OutOfRange(EntityContract, c.ID, "value", c.Value)
	}
	return g.deviceExists(EntityContract, c.ID, c.DeviceID)
}

func (g IntegrityGuard) checkAlert(a Alert) error {
	if err := g.requireDeviceRef(EntityAlert, a.ID, a.DeviceID); err != nil {
		return err
	}
	if !a.Severity.Valid() {
		return domain.InvalidEnum(EntityAlert, a.ID, "severity", a.Severity)
	}
	if !a.Status.Valid() {
		return domain.InvalidEnum(EntityAlert, a.ID, "status", a.Status)
	}
	return g.deviceExists(EntityAlert, a.ID, a.DeviceID)
}

func (g IntegrityGuard) requireDeviceRef(entity EntityType, id, deviceID string) error {
	if err := required(entity, id, "id", id); err != nil {
		return err
	}
	return required(entity, id, "device_id", deviceID)
}

func (g IntegrityGuard) deviceExists(entity EntityType, id, deviceID string) error {
	if _, ok := g.view.FindDevice(deviceID); !ok {
		return domain.DanglingReference(entity, id, "device_id", EntityDevice, deviceID)
	}
	return nil
}

func required(entity EntityType, id, field, value string) error {
	if value == "" {
		return domain.MissingField(entity, id, field)
	}
	return nil
}

// nonNegative rejects negatives and NaN.
func nonNegative(v float64) bool {
	return !math.IsNaN(v) && v >= 0
}

func countByDevice[T any](records []T, deviceID string, key func(T) string) int {
	n := 0
	for _, r := range records {
		if key(r) == deviceID {
			n++
		}
	}
	return n
}
