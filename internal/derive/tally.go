// Package derive computes the read-only views shown on the device dashboard.
// Every function is pure: it reads the slices it is given and never caches.
package derive

import "devicecore/pkg/domain"

// StatusTally counts devices per operational status.
type StatusTally struct {
	Online      int `json:"online"`
	Offline     int `json:"offline"`
	Maintenance int `json:"maintenance"`
}

// TallyEntry is one status bucket in canonical order.
type TallyEntry struct {
	Status domain.DeviceStatus
	Count  int
}

// Total sums every bucket.
func (t StatusTally) Total() int {
	return t.Online + t.Offline + t.Maintenance
}

// Entries returns the buckets in canonical order (Online, Offline, Maintenance).
func (t StatusTally) Entries() []TallyEntry {
	return []TallyEntry{
		{Status: domain.DeviceOnline, Count: t.Online},
		{Status: domain.DeviceOffline, Count: t.Offline},
		{Status: domain.DeviceMaintenance, Count: t.Maintenance},
	}
}

// DeviceStatusTally counts devices by status.
func DeviceStatusTally(devices []domain.Device) StatusTally {
	var t StatusTally
	for _, d := range devices {
		switch d.Status {
		case domain.DeviceOnline:
			t.Online++
		case domain.DeviceOffline:
			t.Offline++
		case domain.DeviceMaintenance:
			t.Maintenance++
		}
	}
	return t
}

// OpenAlertCount counts alerts whose status is Open.
func OpenAlertCount(alerts []domain.Alert) int {
	n := 0
	for _, a := range alerts {
		if a.Status == domain.AlertOpen {
			n++
		}
	}
	return n
}

// ExpiringSoonCount counts contracts whose stored status is Expiring Soon.
// It does not look at end dates; see ExpiringContracts for the window view.
func ExpiringSoonCount(contracts []domain.Contract) int {
	n := 0
	for _, c := range contracts {
		if c.Status == domain.ContractExpiringSoon {
			n++
		}
	}
	return n
}

// FacilityDeviceCount counts devices hosted at facilityID.
func FacilityDeviceCount(devices []domain.Device, facilityID string) int {
	n := 0
	for _, d := range devices {
		if d.FacilityID == facilityID {
			n++
		}
	}
	return n
}

// Summary backs the dashboard quick stats.
type Summary struct {
	TotalDevices      int `json:"total_devices"`
	OnlineDevices     int `json:"online_devices"`
	OpenAlerts        int `json:"open_alerts"`
	TotalContracts    int `json:"total_contracts"`
	ExpiringContracts int `json:"expiring_contracts"`
	Facilities        int `json:"facilities"`
}

// Summarize builds the quick stats. ExpiringContracts uses stored statuses.
func Summarize(facilities []domain.Facility, devices []domain.Device, contracts []domain.Contract, alerts []domain.Alert) Summary {
	return Summary{
		TotalDevices:      len(devices),
		OnlineDevices:     DeviceStatusTally(devices).Online,
		OpenAlerts:        OpenAlertCount(alerts),
		TotalContracts:    len(contracts),
		ExpiringContracts: ExpiringSoonCount(contracts),
		Facilities:        len(facilities),
	}
}
