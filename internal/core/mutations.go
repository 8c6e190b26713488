package core

import (
	"context"

	"devicecore/internal/derive"
	"devicecore/pkg/domain"
)

// Create methods fill an empty id with a prefixed token and apply create-time
// defaults before validation. Update methods replace the whole record; the
// denormalized display fields are always recomputed from the current parent,
// whatever the caller sent. Updating a parent never rewrites its dependents.

// CreateFacility persists a new facility. An unset last visit date becomes today.
func (s *Service) CreateFacility(ctx context.Context, input domain.FacilityInput) (Facility, Result, error) {
	var created Facility
	res, err := s.run(ctx, "create_facility", func(tx Transaction) (string, error) {
		f := input.Facility()
		if f.ID == "" {
			f.ID = s.newID(EntityFacility)
		}
		if f.LastVisitDate.IsZero() {
			f.LastVisitDate = s.Today()
		}
		var err error
		created, err = putFacility(tx, f, false)
		return f.ID, err
	})
	return created, res, err
}

// UpdateFacility replaces a facility. Devices keep the facility name they captured.
func (s *Service) UpdateFacility(ctx context.Context, f Facility) (Facility, Result, error) {
	var updated Facility
	res, err := s.run(ctx, "update_facility", func(tx Transaction) (string, error) {
		var err error
		updated, err = putFacility(tx, f, true)
		return f.ID, err
	})
	return updated, res, err
}

// DeleteFacility removes a facility that no device references.
func (s *Service) DeleteFacility(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_facility", func(tx Transaction) (string, error) {
		if err := NewIntegrityGuard(tx).ValidateDelete(EntityFacility, id); err != nil {
			return id, err
		}
		return id, tx.DeleteFacility(id)
	})
}

func putFacility(tx Transaction, f Facility, update bool) (Facility, error) {
	guard := NewIntegrityGuard(tx)
	if update {
		if _, ok := tx.FindFacility(f.ID); !ok {
			return Facility{}, domain.NotFound(EntityFacility, f.ID)
		}
		if err := guard.ValidateUpdate(EntityFacility, f); err != nil {
			return Facility{}, err
		}
		return tx.UpdateFacility(f)
	}
	if err := guard.ValidateCreate(EntityFacility, f); err != nil {
		return Facility{}, err
	}
	return tx.CreateFacility(f)
}

// CreateDevice persists a new device under an existing facility. An unset
// status becomes Online.
func (s *Service) CreateDevice(ctx context.Context, input domain.DeviceInput) (Device, Result, error) {
	var created Device
	res, err := s.run(ctx, "create_device", func(tx Transaction) (string, error) {
		d := input.Device()
		if d.ID == "" {
			d.ID = s.newID(EntityDevice)
		}
		if d.Status == "" {
			d.Status = domain.DeviceOnline
		}
		var err error
		created, err = putDevice(tx, d, false)
		return d.ID, err
	})
	return created, res, err
}

// UpdateDevice replaces a device and re-captures its facility name.
func (s *Service) UpdateDevice(ctx context.Context, d Device) (Device, Result, error) {
	var updated Device
	res, err := s.run(ctx, "update_device", func(tx Transaction) (string, error) {
		var err error
		updated, err = putDevice(tx, d, true)
		return d.ID, err
	})
	return updated, res, err
}

// DeleteDevice removes a device that no installation, visit, contract or
// alert references.
func (s *Service) DeleteDevice(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_device", func(tx Transaction) (string, error) {
		if err := NewIntegrityGuard(tx).ValidateDelete(EntityDevice, id); err != nil {
			return id, err
		}
		return id, tx.DeleteDevice(id)
	})
}

func putDevice(tx Transaction, d Device, update bool) (Device, error) {
	guard := NewIntegrityGuard(tx)
	check, write := guard.ValidateCreate, tx.CreateDevice
	if update {
		if _, ok := tx.FindDevice(d.ID); !ok {
			return Device{}, domain.NotFound(EntityDevice, d.ID)
		}
		check, write = guard.ValidateUpdate, tx.UpdateDevice
	}
	if err := check(EntityDevice, d); err != nil {
		return Device{}, err
	}
	fc, err := NewReferenceResolver(tx).ResolveFacilityContext(d.FacilityID)
	if err != nil {
		return Device{}, err
	}
	d.FacilityName = fc.FacilityName
	return write(d)
}

// CreateInstallation persists a new installation. A nil checklist receives
// the default five items and an unset status becomes Scheduled.
func (s *Service) CreateInstallation(ctx context.Context, input domain.InstallationInput) (Installation, Result, error) {
	var created Installation
	res, err := s.run(ctx, "create_installation", func(tx Transaction) (string, error) {
		i := input.Installation()
		if i.ID == "" {
			i.ID = s.newID(EntityInstallation)
		}
		if i.Checklist == nil {
			i.Checklist = domain.DefaultChecklist()
		}
		if i.Status == "" {
			i.Status = domain.WorkScheduled
		}
		var err error
		created, err = putInstallation(tx, i, false)
		return i.ID, err
	})
	return created, res, err
}

// UpdateInstallation replaces an installation.
func (s *Service) UpdateInstallation(ctx context.Context, i Installation) (Installation, Result, error) {
	var updated Installation
	res, err := s.run(ctx, "update_installation", func(tx Transaction) (string, error) {
		var err error
		updated, err = putInstallation(tx, i, true)
		return i.ID, err
	})
	return updated, res, err
}

// DeleteInstallation removes an installation.
func (s *Service) DeleteInstallation(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_installation", func(tx Transaction) (string, error) {
		return id, tx.DeleteInstallation(id)
	})
}

func putInstallation(tx Transaction, i Installation, update bool) (Installation, error) {
	guard := NewIntegrityGuard(tx)
	check, write := guard.ValidateCreate, tx.CreateInstallation
	if update {
		if _, ok := tx.FindInstallation(i.ID); !ok {
			return Installation{}, domain.NotFound(EntityInstallation, i.ID)
		}
		check, write = guard.ValidateUpdate, tx.UpdateInstallation
	}
	if err := check(EntityInstallation, i); err != nil {
		return Installation{}, err
	}
	dc, err := NewReferenceResolver(tx).ResolveDeviceContext(i.DeviceID)
	if err != nil {
		return Installation{}, err
	}
	i.DeviceContext = dc
	return write(i)
}

// CreateServiceVisit persists a new service visit. An unset status becomes Scheduled.
func (s *Service) CreateServiceVisit(ctx context.Context, input domain.ServiceVisitInput) (ServiceVisit, Result, error) {
	var created ServiceVisit
	res, err := s.run(ctx, "create_service_visit", func(tx Transaction) (string, error) {
		v := input.ServiceVisit()
		if v.ID == "" {
			v.ID = s.newID(EntityServiceVisit)
		}
		if v.Status == "" {
			v.Status = domain.WorkScheduled
		}
		var err error
		created, err = putServiceVisit(tx, v, false)
		return v.ID, err
	})
	return created, res, err
}

// UpdateServiceVisit replaces a service visit.
func (s *Service) UpdateServiceVisit(ctx context.Context, v ServiceVisit) (ServiceVisit, Result, error) {
	var updated ServiceVisit
	res, err := s.run(ctx, "update_service_visit", func(tx Transaction) (string, error) {
		var err error
		updated, err = putServiceVisit(tx, v, true)
		return v.ID, err
	})
	return updated, res, err
}

// DeleteServiceVisit removes a service visit.
func (s *Service) DeleteServiceVisit(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_service_visit", func(tx Transaction) (string, error) {
		return id, tx.DeleteServiceVisit(id)
	})
}

func putServiceVisit(tx Transaction, v ServiceVisit, update bool) (ServiceVisit, error) {
	guard := NewIntegrityGuard(tx)
	check, write := guard.ValidateCreate, tx.CreateServiceVisit
	if update {
		if _, ok := tx.FindServiceVisit(v.ID); !ok {
			return ServiceVisit{}, domain.NotFound(EntityServiceVisit, v.ID)
		}
		check, write = guard.ValidateUpdate, tx.UpdateServiceVisit
	}
	if err := check(EntityServiceVisit, v); err != nil {
		return ServiceVisit{}, err
	}
	dc, err := NewReferenceResolver(tx).ResolveDeviceContext(v.DeviceID)
	if err != nil {
		return ServiceVisit{}, err
	}
	v.DeviceContext = dc
	return write(v)
}

// CreateContract persists a new contract. Generated ids use the contract
// type as prefix. An unset status takes the value implied by the end date.
func (s *Service) CreateContract(ctx context.Context, input domain.ContractInput) (Contract, Result, error) {
	var created Contract
	res, err := s.run(ctx, "create_contract", func(tx Transaction) (string, error) {
		c := input.Contract()
		if c.ID == "" {
			c.ID = s.ids.Next(string(c.ContractType))
		}
		if c.Status == "" {
			c.Status = derive.ContractWindowStatus(c, s.Today(), s.views.ExpiryWindowDays)
		}
		var err error
		created, err = putContract(tx, c, false)
		return c.ID, err
	})
	return created, res, err
}

// UpdateContract replaces a contract. The stored status is kept as sent even
// when it disagrees with the end date.
func (s *Service) UpdateContract(ctx context.Context, c Contract) (Contract, Result, error) {
	var updated Contract
	res, err := s.run(ctx, "update_contract", func(tx Transaction) (string, error) {
		var err error
		updated, err = putContract(tx, c, true)
		return c.ID, err
	})
	return updated, res, err
}

// DeleteContract removes a contract.
func (s *Service) DeleteContract(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_contract", func(tx Transaction) (string, error) {
		return id, tx.DeleteContract(id)
	})
}

func putContract(tx Transaction, c Contract, update bool) (Contract, error) {
	guard := NewIntegrityGuard(tx)
	check, write := guard.ValidateCreate, tx.CreateContract
	if update {
		if _, ok := tx.FindContract(c.ID); !ok {
			return Contract{}, domain.NotFound(EntityContract, c.ID)
		}
		check, write = guard.ValidateUpdate, tx.UpdateContract
	}
	if err := check(EntityContract, c); err != nil {
		return Contract{}, err
	}
	dc, err := NewReferenceResolver(tx).ResolveDeviceContext(c.DeviceID)
	if err != nil {
		return Contract{}, err
	}
	c.DeviceContext = dc
	return write(c)
}

// CreateAlert persists a new alert. An unset created date becomes today and
// an unset status becomes Open.
func (s *Service) CreateAlert(ctx context.Context, input domain.AlertInput) (Alert, Result, error) {
	var created Alert
	res, err := s.run(ctx, "create_alert", func(tx Transaction) (string, error) {
		a := input.Alert()
		if a.ID == "" {
			a.ID = s.newID(EntityAlert)
		}
		if a.CreatedDate.IsZero() {
			a.CreatedDate = s.Today()
		}
		if a.Status == "" {
			a.Status = domain.AlertOpen
		}
		var err error
		created, err = putAlert(tx, a, false)
		return a.ID, err
	})
	return created, res, err
}

// UpdateAlert replaces an alert.
func (s *Service) UpdateAlert(ctx context.Context, a Alert) (Alert, Result, error) {
	var updated Alert
	res, err := s.run(ctx, "update_alert", func(tx Transaction) (string, error) {
		var err error
		updated, err = putAlert(tx, a, true)
		return a.ID, err
	})
	return updated, res, err
}

// DeleteAlert removes an alert.
func (s *Service) DeleteAlert(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_alert", func(tx Transaction) (string, error) {
		return id, tx.DeleteAlert(id)
	})
}

// AcknowledgeAlert moves an alert to Acknowledged, keeping every other field.
func (s *Service) AcknowledgeAlert(ctx context.Context, id string) (Alert, Result, error) {
	return s.transitionAlert(ctx, "acknowledge_alert", id, func(a *Alert) {
		a.Status = domain.AlertAcknowledged
	})
}

// ResolveAlert moves an alert to Resolved. Non-empty notes replace the
// stored resolution notes.
func (s *Service) ResolveAlert(ctx context.Context, id, notes string) (Alert, Result, error) {
	return s.transitionAlert(ctx, "resolve_alert", id, func(a *Alert) {
		a.Status = domain.AlertResolved
		if notes != "" {
			a.ResolutionNotes = notes
		}
	})
}

func (s *Service) transitionAlert(ctx context.Context, op, id string, mutate func(*Alert)) (Alert, Result, error) {
	var updated Alert
	res, err := s.run(ctx, op, func(tx Transaction) (string, error) {
		current, ok := tx.FindAlert(id)
		if !ok {
			return id, domain.NotFound(EntityAlert, id)
		}
		mutate(&current)
		var err error
		updated, err = putAlert(tx, current, true)
		return id, err
	})
	return updated, res, err
}

func putAlert(tx Transaction, a Alert, update bool) (Alert, error) {
	guard := NewIntegrityGuard(tx)
	check, write := guard.ValidateCreate, tx.CreateAlert
	if update {
		if _, ok := tx.FindAlert(a.ID); !ok {
			return Alert{}, domain.NotFound(EntityAlert, a.ID)
		}
		check, write = guard.ValidateUpdate, tx.UpdateAlert
	}
	if err := check(EntityAlert, a); err != nil {
		return Alert{}, err
	}
	dc, err := NewReferenceResolver(tx).ResolveDeviceContext(a.DeviceID)
	if err != nil {
		return Alert{}, err
	}
	a.DeviceContext = dc
	return write(a)
}
