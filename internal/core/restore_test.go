package core

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"devicecore/pkg/domain"
)

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	facility := Facility{ID: "FAC1", Name: "Acme"}
	device := Device{ID: "DEV2", Type: "Monitor", FacilityID: "FAC1", Status: domain.DeviceOnline, BatteryLevel: 40}
	cases := []struct {
		name string
		snap Snapshot
		want error
	}{
		{
			name: "dangling facility",
			snap: Snapshot{Devices: []Device{{ID: "DEV2", Type: "Monitor", FacilityID: "NOPE", Status: domain.DeviceOnline}}},
			want: domain.ErrDanglingReference,
		},
		{
			name: "undeclared status",
			snap: Snapshot{Facilities: []Facility{facility}, Devices: []Device{{ID: "DEV2", Type: "Monitor", FacilityID: "FAC1", Status: "Bogus"}}},
			want: domain.ErrInvalidEnumValue,
		},
		{
			name: "battery above range",
			snap: Snapshot{Facilities: []Facility{facility}, Devices: []Device{{ID: "DEV2", Type: "Monitor", FacilityID: "FAC1", Status: domain.DeviceOnline, BatteryLevel: 500}}},
			want: domain.ErrOutOfRange,
		},
		{
			name: "duplicate id",
			snap: Snapshot{Facilities: []Facility{facility, facility}},
			want: domain.ErrDuplicateKey,
		},
		{
			name: "alert for unknown device",
			snap: Snapshot{Facilities: []Facility{facility}, Devices: []Device{device}, Alerts: []Alert{{ID: "ALT1", DeviceID: "DEV9", Severity: domain.SeverityLow, Status: domain.AlertOpen}}},
			want: domain.ErrDanglingReference,
		},
		{
			name: "missing id",
			snap: Snapshot{Facilities: []Facility{{Name: "Nameless"}}},
			want: domain.ErrMissingField,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()
			seedDevice(t, svc)

			if _, err := svc.Restore(ctx, tc.snap); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			devices, _ := svc.ListDevices(ctx)
			if len(devices) != 1 || devices[0].ID != "DEV1" {
				t.Fatalf("failed restore must keep prior state, got %+v", devices)
			}
			tally, _ := svc.DeviceStatusTally(ctx)
			if tally.Total() != len(devices) {
				t.Fatalf("tally %d disagrees with %d devices", tally.Total(), len(devices))
			}
		})
	}
}

func TestRestoreReplacesStateAndKeepsCapturedFields(t *testing.T) {
	ctx := context.Background()
	src := newTestService(t)
	fac, _ := seedDevice(t, src)
	if _, _, err := src.CreateAlert(ctx, domain.AlertInput{ID: "ALT1", DeviceID: "DEV1", Severity: domain.SeverityCritical}); err != nil {
		t.Fatalf("create alert: %v", err)
	}
	if _, _, err := src.CreateInstallation(ctx, domain.InstallationInput{ID: "INST1", DeviceID: "DEV1"}); err != nil {
		t.Fatalf("create installation: %v", err)
	}
	fac.Name = "Acme West"
	if _, _, err := src.UpdateFacility(ctx, fac); err != nil {
		t.Fatalf("rename facility: %v", err)
	}
	want, _ := src.Snapshot(ctx)

	dst := newTestService(t)
	if _, _, err := dst.CreateFacility(ctx, domain.FacilityInput{ID: "FAC9", Name: "Old"}); err != nil {
		t.Fatalf("create facility: %v", err)
	}
	var events []Event
	dst.Subscribe(func(e Event) { events = append(events, e) })

	if _, err := dst.Restore(ctx, want); err != nil {
		t.Fatalf("restore: %v", err)
	}
	got, _ := dst.Snapshot(ctx)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("restored state differs:\n got %+v\nwant %+v", got, want)
	}
	alert, _ := dst.GetAlert(ctx, "ALT1")
	if alert.FacilityName != "Acme" {
		t.Fatalf("restore must keep captured facility name, got %q", alert.FacilityName)
	}
	if _, err := dst.GetFacility(ctx, "FAC9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("restore must drop records absent from the snapshot, got %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("restore must not notify subscribers, got %d events", len(events))
	}

	if _, err := dst.Restore(ctx, Snapshot{}); err != nil {
		t.Fatalf("restore empty: %v", err)
	}
	summary, _ := dst.DashboardSummary(ctx)
	if summary.TotalDevices != 0 || summary.Facilities != 0 {
		t.Fatalf("expected empty store, got %+v", summary)
	}
}
