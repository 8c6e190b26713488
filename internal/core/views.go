package core

import (
	"context"

	"devicecore/internal/derive"
	"devicecore/pkg/domain"
)

// Read methods return copies taken from one consistent snapshot; mutating
// them never affects stored state.

// ListFacilities returns every facility in insertion order.
func (s *Service) ListFacilities(ctx context.Context) ([]Facility, error) {
	var out []Facility
	err := s.view(ctx, func(v TransactionView) error {
		out = v.ListFacilities()
		return nil
	})
	return out, err
}

// GetFacility returns the facility with id or ErrNotFound.
func (s *Service) GetFacility(ctx context.Context, id string) (Facility, error) {
	return get(ctx, s, EntityFacility, id, TransactionView.FindFacility)
}

// ListDevices returns every device in insertion order.
func (s *Service) ListDevices(ctx context.Context) ([]Device, error) {
	var out []Device
	err := s.view(ctx, func(v TransactionView) error {
		out = v.ListDevices()
		return nil
	})
	return out, err
}

// GetDevice returns the device with id or ErrNotFound.
func (s *Service) GetDevice(ctx context.Context, id string) (Device, error) {
	return get(ctx, s, EntityDevice, id, TransactionView.FindDevice)
}

// ListInstallations returns every installation in insertion order.
func (s *Service) ListInstallations(ctx context.Context) ([]Installation, error) {
	var out []Installation
	err := s.view(ctx, func(v TransactionView) error {
		out = v.ListInstallations()
		return nil
	})
	return out, err
}

// GetInstallation returns the installation with id or ErrNotFound.
func (s *Service) GetInstallation(ctx context.Context, id string) (Installation, error) {
	return get(ctx, s, EntityInstallation, id, TransactionView.FindInstallation)
}

// ListServiceVisits returns every service visit in insertion order.
func (s *Service) ListServiceVisits(ctx context.Context) ([]ServiceVisit, error) {
	var out []ServiceVisit
	err := s.view(ctx, func(v TransactionView) error {
		out = v.ListServiceVisits()
		return nil
	})
	return out, err
}

// GetServiceVisit returns the service visit with id or ErrNotFound.
func (s *Service) GetServiceVisit(ctx context.Context, id string) (ServiceVisit, error) {
	return get(ctx, s, EntityServiceVisit, id, TransactionView.FindServiceVisit)
}

// ListContracts returns every contract in insertion order.
func (s *Service) ListContracts(ctx context.Context) ([]Contract, error) {
	var out []Contract
	err := s.view(ctx, func(v TransactionView) error {
		out = v.ListContracts()
		return nil
	})
	return out, err
}

// GetContract returns the contract with id or ErrNotFound.
func (s *Service) GetContract(ctx context.Context, id string) (Contract, error) {
	return get(ctx, s, EntityContract, id, TransactionView.FindContract)
}

// ListAlerts returns every alert in insertion order.
func (s *Service) ListAlerts(ctx context.Context) ([]Alert, error) {
	var out []Alert
	err := s.view(ctx, func(v TransactionView) error {
		out = v.ListAlerts()
		return nil
	})
	return out, err
}

// GetAlert returns the alert with id or ErrNotFound.
func (s *Service) GetAlert(ctx context.Context, id string) (Alert, error) {
	return get(ctx, s, EntityAlert, id, TransactionView.FindAlert)
}

func get[T any](ctx context.Context, s *Service, entity EntityType, id string, find func(TransactionView, string) (T, bool)) (T, error) {
	var (
		out T
		ok  bool
	)
	if err := s.view(ctx, func(v TransactionView) error {
		out, ok = find(v, id)
		return nil
	}); err != nil {
		return out, err
	}
	if !ok {
		return out, domain.NotFound(entity, id)
	}
	return out, nil
}

// DevicesAtFacility returns the devices whose facility_id is facilityID.
func (s *Service) DevicesAtFacility(ctx context.Context, facilityID string) ([]Device, error) {
	devices, err := s.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Device, 0)
	for _, d := range devices {
		if d.FacilityID == facilityID {
			out = append(out, d)
		}
	}
	return out, nil
}

// DeviceStatusTally counts devices per operational status.
func (s *Service) DeviceStatusTally(ctx context.Context) (derive.StatusTally, error) {
	devices, err := s.ListDevices(ctx)
	if err != nil {
		return derive.StatusTally{}, err
	}
	return derive.DeviceStatusTally(devices), nil
}

// OpenAlertsSummary returns up to limit open alerts in storage order. A
// non-positive limit uses the configured default.
func (s *Service) OpenAlertsSummary(ctx context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = s.views.AlertSummaryLimit
	}
	alerts, err := s.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return derive.OpenAlertsSummary(alerts, limit), nil
}

// AlertsByStatus filters alerts by lifecycle status. An empty status returns all.
func (s *Service) AlertsByStatus(ctx context.Context, status domain.AlertStatus) ([]Alert, error) {
	alerts, err := s.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	return derive.AlertsByStatus(alerts, status), nil
}

// AlertStatusCounts counts alerts per lifecycle status.
func (s *Service) AlertStatusCounts(ctx context.Context) (derive.AlertCounts, error) {
	alerts, err := s.ListAlerts(ctx)
	if err != nil {
		return derive.AlertCounts{}, err
	}
	return derive.AlertStatusCounts(alerts), nil
}

// ExpiringContracts returns contracts whose end date falls within
// windowDays of today, inclusive on both ends. A non-positive window uses
// the configured default.
func (s *Service) ExpiringContracts(ctx context.Context, windowDays int) ([]Contract, error) {
	if windowDays <= 0 {
		windowDays = s.views.ExpiryWindowDays
	}
	contracts, err := s.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	return derive.ExpiringContracts(contracts, s.Today(), windowDays), nil
}

// ContractStatusDrift lists contracts whose stored status disagrees with the
// status their end date implies today.
func (s *Service) ContractStatusDrift(ctx context.Context) ([]derive.StatusDrift, error) {
	contracts, err := s.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	return derive.ContractStatusDrift(contracts, s.Today(), s.views.ExpiryWindowDays), nil
}

// RecentActivity merges service visits and installations by date, newest
// first, truncated to limit. A non-positive limit uses the configured default.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]derive.ActivityEntry, error) {
	if limit <= 0 {
		limit = s.views.ActivityLimit
	}
	var out []derive.ActivityEntry
	err := s.view(ctx, func(v TransactionView) error {
		out = derive.RecentActivity(v.ListServiceVisits(), v.ListInstallations(), limit)
		return nil
	})
	return out, err
}

// InstallationProgress reports checklist completion for one installation.
func (s *Service) InstallationProgress(ctx context.Context, id string) (derive.Progress, error) {
	inst, err := s.GetInstallation(ctx, id)
	if err != nil {
		return derive.Progress{}, err
	}
	return derive.InstallationProgress(inst), nil
}

// FacilityDeviceCount returns how many devices reference facilityID.
func (s *Service) FacilityDeviceCount(ctx context.Context, facilityID string) (int, error) {
	devices, err := s.ListDevices(ctx)
	if err != nil {
		return 0, err
	}
	return derive.FacilityDeviceCount(devices, facilityID), nil
}

// SearchDevices matches term against device type, model and facility name,
// ignoring case, optionally restricted to one status.
func (s *Service) SearchDevices(ctx context.Context, term string, status domain.DeviceStatus) ([]Device, error) {
	devices, err := s.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	return derive.SearchDevices(devices, term, status), nil
}

// LowBatteryDevices returns devices in the low battery band.
func (s *Service) LowBatteryDevices(ctx context.Context) ([]Device, error) {
	devices, err := s.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	return derive.LowBatteryDevices(devices), nil
}

// DashboardSummary computes the headline counters from one snapshot.
func (s *Service) DashboardSummary(ctx context.Context) (derive.Summary, error) {
	var out derive.Summary
	err := s.view(ctx, func(v TransactionView) error {
		out = derive.Summarize(v.ListFacilities(), v.ListDevices(), v.ListContracts(), v.ListAlerts())
		return nil
	})
	return out, err
}

// Snapshot returns an ordered copy of all collections.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	var out Snapshot
	err := s.view(ctx, func(v TransactionView) error {
		out = Snapshot{
			Facilities:    v.ListFacilities(),
			Devices:       v.ListDevices(),
			Installations: v.ListInstallations(),
			ServiceVisits: v.ListServiceVisits(),
			Contracts:     v.ListContracts(),
			Alerts:        v.ListAlerts(),
		}
		return nil
	})
	return out, err
}
