package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"devicecore/pkg/domain"
)

func guardFor(t *testing.T) (IntegrityGuard, ReferenceResolver) {
	t.Helper()
	svc := newTestService(t)
	seedDevice(t, svc)
	var (
		guard    IntegrityGuard
		resolver ReferenceResolver
	)
	if err := svc.view(context.Background(), func(v TransactionView) error {
		guard = NewIntegrityGuard(v)
		resolver = NewReferenceResolver(v)
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	return guard, resolver
}

func TestIntegrityGuardCheckOrder(t *testing.T) {
	guard, _ := guardFor(t)

	// Missing fields are reported before enum, range and reference failures.
	err := guard.ValidateCreate(EntityDevice, Device{ID: "DEV2", Status: "Broken", BatteryLevel: -1, FacilityID: "FAC9"})
	var de *domain.Error
	if !errors.As(err, &de) || !errors.Is(err, domain.ErrMissingField) || de.Field != "type" {
		t.Fatalf("expected missing type first, got %v", err)
	}
	err = guard.ValidateCreate(EntityDevice, Device{ID: "DEV2", Type: "Monitor", Status: "Broken", BatteryLevel: -1, FacilityID: "FAC9"})
	if !errors.Is(err, domain.ErrInvalidEnumValue) {
		t.Fatalf("expected enum before range, got %v", err)
	}
	err = guard.ValidateCreate(EntityDevice, Device{ID: "DEV2", Type: "Monitor", Status: domain.DeviceOnline, BatteryLevel: -1, FacilityID: "FAC9"})
	if !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected range before reference, got %v", err)
	}
	err = guard.ValidateUpdate(EntityDevice, Device{ID: "DEV2", Type: "Monitor", Status: domain.DeviceOnline, FacilityID: "FAC9"})
	if !errors.Is(err, domain.ErrDanglingReference) {
		t.Fatalf("expected dangling reference, got %v", err)
	}
	if err := guard.ValidateCreate(EntityDevice, Device{ID: "DEV2", Type: "Monitor", Status: domain.DeviceOnline, FacilityID: "FAC1", AMCStatus: "Lapsed"}); !errors.Is(err, domain.ErrInvalidEnumValue) {
		t.Fatalf("expected invalid amc status, got %v", err)
	}
}

func TestIntegrityGuardRejectsNaNAndMismatchedRecords(t *testing.T) {
	guard, _ := guardFor(t)
	err := guard.ValidateCreate(EntityContract, Contract{ID: "C1", DeviceID: "DEV1", ContractType: domain.ContractAMC, Status: domain.ContractActive, Value: math.NaN()})
	if !errors.Is(err, domain.ErrOutOfRange) {
		t.Fatalf("expected NaN to be out of range, got %v", err)
	}
	if err := guard.ValidateCreate(EntityAlert, Device{ID: "DEV2"}); err == nil {
		t.Fatalf("expected mismatched record type to fail")
	}
	if err := guard.ValidateDelete(EntityAlert, "ALT1"); err != nil {
		t.Fatalf("alerts have no dependents: %v", err)
	}
}

func TestReferenceResolver(t *testing.T) {
	_, resolver := guardFor(t)
	fc, err := resolver.ResolveFacilityContext("FAC1")
	if err != nil || fc.FacilityName != "Acme" {
		t.Fatalf("unexpected facility context %+v (%v)", fc, err)
	}
	dc, err := resolver.ResolveDeviceContext("DEV1")
	if err != nil || dc != (domain.DeviceContext{DeviceType: "Ventilator", FacilityID: "FAC1", FacilityName: "Acme"}) {
		t.Fatalf("unexpected device context %+v (%v)", dc, err)
	}
	if _, err := resolver.ResolveFacilityContext("FAC9"); !errors.Is(err, domain.ErrDanglingReference) {
		t.Fatalf("expected dangling reference, got %v", err)
	}
	if _, err := resolver.ResolveDeviceContext(""); !errors.Is(err, domain.ErrDanglingReference) {
		t.Fatalf("expected dangling reference, got %v", err)
	}
}
