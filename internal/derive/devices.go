package derive

import (
	"strings"

	"devicecore/pkg/domain"
)

// SearchDevices matches term case-insensitively against type, model and
// facility name. An empty term matches everything; an empty status skips the
// status filter.
func SearchDevices(devices []domain.Device, term string, status domain.DeviceStatus) []domain.Device {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.Device, 0)
	for _, d := range devices {
		if status != "" && d.Status != status {
			continue
		}
		if needle == "" ||
			strings.Contains(strings.ToLower(d.Type), needle) ||
			strings.Contains(strings.ToLower(d.Model), needle) ||
			strings.Contains(strings.ToLower(d.FacilityName), needle) {
			out = append(out, d)
		}
	}
	return out
}

// LowBatteryDevices lists devices in the low battery band.
func LowBatteryDevices(devices []domain.Device) []domain.Device {
	out := make([]domain.Device, 0)
	for _, d := range devices {
		if ClassifyBattery(d.BatteryLevel) == BatteryLow {
			out = append(out, d)
		}
	}
	return out
}
