package core

import "devicecore/pkg/domain"

// FacilityContext is the snapshot copied onto devices from their facility.
type FacilityContext struct {
	FacilityName string
}

// ReferenceResolver looks up parent records and returns the display fields
// dependents copy at write time. It never modifies state.
type ReferenceResolver struct {
	view TransactionView
}

// NewReferenceResolver resolves against view.
func NewReferenceResolver(view TransactionView) ReferenceResolver {
	return ReferenceResolver{view: view}
}

// ResolveFacilityContext returns the facility name for facilityID.
func (r ReferenceResolver) ResolveFacilityContext(facilityID string) (FacilityContext, error) {
	f, ok := r.view.FindFacility(facilityID)
	if !ok {
		return FacilityContext{}, domain.DanglingReference("", "", "facility_id", EntityFacility, facilityID)
	}
	return FacilityContext{FacilityName: f.Name}, nil
}

// ResolveDeviceContext returns the device type and the device's facility
// id and name as currently stored on the device.
func (r ReferenceResolver) ResolveDeviceContext(deviceID string) (domain.DeviceContext, error) {
	d, ok := r.view.FindDevice(deviceID)
	if !ok {
		return domain.DeviceContext{}, domain.DanglingReference("", "", "device_id", EntityDevice, deviceID)
	}
	return domain.DeviceContext{
		DeviceType:   d.Type,
		FacilityID:   d.FacilityID,
		FacilityName: d.FacilityName,
	}, nil
}
