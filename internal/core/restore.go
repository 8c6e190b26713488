package core

import "context"

// Restore replaces every collection with the records in snap, in snapshot
// order. Each record passes IntegrityGuard against the state being rebuilt,
// so parents must precede their dependents. Display fields are kept exactly
// as captured in the snapshot. Any failure leaves the current state in place.
// Subscribers are not notified.
func (s *Service) Restore(ctx context.Context, snap Snapshot) (Result, error) {
	return s.run(ctx, "restore_snapshot", func(tx Transaction) (string, error) {
		if err := clearState(tx); err != nil {
			return "", err
		}

		guard := NewIntegrityGuard(tx)
		if err := restoreRecords(guard, EntityFacility, snap.Facilities, tx.CreateFacility); err != nil {
			return "", err
		}
		if err := restoreRecords(guard, EntityDevice, snap.Devices, tx.CreateDevice); err != nil {
			return "", err
		}
		if err := restoreRecords(guard, EntityInstallation, snap.Installations, tx.CreateInstallation); err != nil {
			return "", err
		}
		if err := restoreRecords(guard, EntityServiceVisit, snap.ServiceVisits, tx.CreateServiceVisit); err != nil {
			return "", err
		}
		if err := restoreRecords(guard, EntityContract, snap.Contracts, tx.CreateContract); err != nil {
			return "", err
		}
		return "", restoreRecords(guard, EntityAlert, snap.Alerts, tx.CreateAlert)
	})
}

// clearState empties tx dependents first.
func clearState(tx Transaction) error {
	if err := clearRecords(tx.ListAlerts(), Alert.Key, tx.DeleteAlert); err != nil {
		return err
	}
	if err := clearRecords(tx.ListContracts(), Contract.Key, tx.DeleteContract); err != nil {
		return err
	}
	if err := clearRecords(tx.ListServiceVisits(), ServiceVisit.Key, tx.DeleteServiceVisit); err != nil {
		return err
	}
	if err := clearRecords(tx.ListInstallations(), Installation.Key, tx.DeleteInstallation); err != nil {
		return err
	}
	if err := clearRecords(tx.ListDevices(), Device.Key, tx.DeleteDevice); err != nil {
		return err
	}
	return clearRecords(tx.ListFacilities(), Facility.Key, tx.DeleteFacility)
}

func clearRecords[T any](records []T, key func(T) string, remove func(string) error) error {
	for i := len(records) - 1; i >= 0; i-- {
		if err := remove(key(records[i])); err != nil {
			return err
		}
	}
	return nil
}

func restoreRecords[T any](guard IntegrityGuard, entity EntityType, records []T, create func(T) (T, error)) error {
	for _, r := range records {
		if err := guard.ValidateCreate(entity, r); err != nil {
			return err
		}
		if _, err := create(r); err != nil {
			return err
		}
	}
	return nil
}
