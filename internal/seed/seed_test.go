package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devicecore/internal/core"
	"devicecore/pkg/domain"
)

func newService() *core.Service {
	return core.NewInMemoryService(core.NewDefaultRulesEngine(),
		core.WithClock(core.ClockFunc(func() time.Time { return time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC) })),
	)
}

func TestDefaultDatasetApplies(t *testing.T) {
	ds := Default()
	require.Len(t, ds.Facilities, 2)
	require.Len(t, ds.Devices, 2)

	svc := newService()
	ctx := context.Background()
	counts, err := Apply(ctx, svc, ds)
	require.NoError(t, err)
	assert.Equal(t, Counts{
		domain.EntityFacility:     2,
		domain.EntityDevice:       2,
		domain.EntityInstallation: 1,
		domain.EntityServiceVisit: 1,
		domain.EntityContract:     1,
		domain.EntityAlert:        1,
	}, counts)
	assert.Equal(t, 8, counts.Total())

	dev, err := svc.GetDevice(ctx, "DEV002")
	require.NoError(t, err)
	assert.Equal(t, "Metro Medical Center", dev.FacilityName)
	assert.Equal(t, domain.ContractExpiringSoon, dev.AMCStatus)
	assert.Equal(t, domain.MustParseDate("2023-08-15"), dev.InstallationDate)

	alert, err := svc.GetAlert(ctx, "ALT001")
	require.NoError(t, err)
	assert.Equal(t, "Patient Monitor", alert.DeviceType)
	assert.Equal(t, "FAC002", alert.FacilityID)

	progress, err := svc.InstallationProgress(ctx, "INST001")
	require.NoError(t, err)
	assert.Equal(t, 4, progress.Completed)
	assert.Equal(t, 4, progress.Total)

	contract, err := svc.GetContract(ctx, "AMC001")
	require.NoError(t, err)
	assert.Equal(t, 15000.0, contract.Value)
	assert.Equal(t, "Dr. Michael Brown", contract.Contact.Person)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("facilities:\n  - id: FAC1\n    colour: blue\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode dataset")
}

func TestDecodeEmptyDocument(t *testing.T) {
	ds, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ds.Facilities)
}

func TestDecodeRejectsBadDate(t *testing.T) {
	_, err := Decode(strings.NewReader("facilities:\n  - id: FAC1\n    last_visit_date: 15/01/2024\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte("facilities:\n  - id: FAC9\n    name: Lakeside Clinic\n"), 0o600))
	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.Facilities, 1)
	assert.Equal(t, "Lakeside Clinic", ds.Facilities[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyStopsAtDanglingReference(t *testing.T) {
	ds := Dataset{
		Facilities: []domain.FacilityInput{{ID: "FAC1", Name: "Acme"}},
		Devices: []domain.DeviceInput{
			{ID: "DEV1", Type: "Ventilator", FacilityID: "FAC1"},
			{ID: "DEV2", Type: "Monitor", FacilityID: "FAC404"},
			{ID: "DEV3", Type: "Pump", FacilityID: "FAC1"},
		},
	}
	svc := newService()
	counts, err := Apply(context.Background(), svc, ds)
	require.ErrorIs(t, err, domain.ErrDanglingReference)
	assert.Contains(t, err.Error(), "seed device DEV2")
	assert.Equal(t, 1, counts[domain.EntityDevice])

	devices, err := svc.ListDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "DEV1", devices[0].ID)
}
