// Package seed loads YAML fixture datasets and applies them through the
// service so every record passes the same integrity checks as a live write.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"devicecore/internal/core"
	"devicecore/pkg/domain"
)

//go:embed default.yaml
var defaultDataset []byte

// Dataset is the on-disk fixture layout. Records carry only caller-owned
// fields; display names are resolved when they are applied.
type Dataset struct {
	Facilities    []domain.FacilityInput     `yaml:"facilities"`
	Devices       []domain.DeviceInput       `yaml:"devices"`
	Installations []domain.InstallationInput `yaml:"installations"`
	ServiceVisits []domain.ServiceVisitInput `yaml:"service_visits"`
	Contracts     []domain.ContractInput     `yaml:"contracts"`
	Alerts        []domain.AlertInput        `yaml:"alerts"`
}

// Counts reports how many records of each kind were created.
type Counts map[domain.EntityType]int

// Total sums every kind.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Decode parses a dataset, rejecting unknown keys.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, nil
		}
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads the dataset at path.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Default returns the bundled demo dataset.
func Default() Dataset {
	ds, err := Decode(bytes.NewReader(defaultDataset))
	if err != nil {
		panic(fmt.Sprintf("seed: bundled dataset: %v", err))
	}
	return ds
}

// Apply creates every record in parent-first order and stops at the first
// failure. Records created before the failure stay committed.
func Apply(ctx context.Context, svc *core.Service, ds Dataset) (Counts, error) {
	counts := Counts{}
	for _, in := range ds.Facilities {
		if _, _, err := svc.CreateFacility(ctx, in); err != nil {
			return counts, fmt.Errorf("seed facility %s: %w", in.ID, err)
		}
		counts[domain.EntityFacility]++
	}
	for _, in := range ds.Devices {
		if _, _, err := svc.CreateDevice(ctx, in); err != nil {
			return counts, fmt.Errorf("seed device %s: %w", in.ID, err)
		}
		counts[domain.EntityDevice]++
	}
	for _, in := range ds.Installations {
		if _, _, err := svc.CreateInstallation(ctx, in); err != nil {
			return counts, fmt.Errorf("seed installation %s: %w", in.ID, err)
		}
		counts[domain.EntityInstallation]++
	}
	for _, in := range ds.ServiceVisits {
		if _, _, err := svc.CreateServiceVisit(ctx, in); err != nil {
			return counts, fmt.Errorf("seed service visit %s: %w", in.ID, err)
		}
		counts[domain.EntityServiceVisit]++
	}
	for _, in := range ds.Contracts {
		if _, _, err := svc.CreateContract(ctx, in); err != nil {
			return counts, fmt.Errorf("seed contract %s: %w", in.ID, err)
		}
		counts[domain.EntityContract]++
	}
	for _, in := range ds.Alerts {
		if _, _, err := svc.CreateAlert(ctx, in); err != nil {
			return counts, fmt.Errorf("seed alert %s: %w", in.ID, err)
		}
		counts[domain.EntityAlert]++
	}
	return counts, nil
}
