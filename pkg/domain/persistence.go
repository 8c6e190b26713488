package domain

import (
	"context"
	"time"
)

// Transaction exposes the collection primitives a persistence implementation
// must support within an atomic scope. Primitives only enforce key
// uniqueness and presence; referential checks happen upstream.
type Transaction interface {
	TransactionView
	Snapshot() TransactionView
	CreateFacility(Facility) (Facility, error)
	UpdateFacility(Facility) (Facility, error)
	DeleteFacility(id string) error
	CreateDevice(Device) (Device, error)
	UpdateDevice(Device) (Device, error)
	DeleteDevice(id string) error
	CreateInstallation(Installation) (Installation, error)
	UpdateInstallation(Installation) (Installation, error)
	DeleteInstallation(id string) error
	CreateServiceVisit(ServiceVisit) (ServiceVisit, error)
	UpdateServiceVisit(ServiceVisit) (ServiceVisit, error)
	DeleteServiceVisit(id string) error
	CreateContract(Contract) (Contract, error)
	UpdateContract(Contract) (Contract, error)
	DeleteContract(id string) error
	CreateAlert(Alert) (Alert, error)
	UpdateAlert(Alert) (Alert, error)
	DeleteAlert(id string) error
}

// TransactionView provides read-only access to snapshot data. List methods
// return records in insertion order.
type TransactionView interface {
	ListFacilities() []Facility
	ListDevices() []Device
	ListInstallations() []Installation
	ListServiceVisits() []ServiceVisit
	ListContracts() []Contract
	ListAlerts() []Alert
	FindFacility(id string) (Facility, bool)
	FindDevice(id string) (Device, bool)
	FindInstallation(id string) (Installation, bool)
	FindServiceVisit(id string) (ServiceVisit, bool)
	FindContract(id string) (Contract, bool)
	FindAlert(id string) (Alert, bool)
}

// PersistentStore is the abstraction the service layer runs against. NowFunc
// exposes the clock the store stamps transactions with.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	NowFunc() func() time.Time
}
