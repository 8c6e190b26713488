// Package memory provides the in-memory implementation of the device store:
// six insertion-ordered collections swapped atomically per transaction.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"devicecore/pkg/domain"
)

// Compile-time contract assertions ensuring memory.Store adheres to the domain persistence interfaces.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Facility aliases domain.Facility.
	Facility = domain.Facility
	// Device aliases domain.Device.
	Device = domain.Device
	// Installation aliases domain.Installation.
	Installation = domain.Installation
	// ServiceVisit aliases domain.ServiceVisit.
	ServiceVisit = domain.ServiceVisit
	// Contract aliases domain.Contract.
	Contract = domain.Contract
	// Alert aliases domain.Alert.
	Alert = domain.Alert
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

type memoryState struct {
	facilities    *Collection[Facility]
	devices       *Collection[Device]
	installations *Collection[Installation]
	visits        *Collection[ServiceVisit]
	contracts     *Collection[Contract]
	alerts        *Collection[Alert]
}

// Snapshot captures a point-in-time clone of the store state. Slices keep
// insertion order.
type Snapshot struct {
	Facilities    []Facility     `json:"facilities" yaml:"facilities"`
	Devices       []Device       `json:"devices" yaml:"devices"`
	Installations []Installation `json:"installations" yaml:"installations"`
	ServiceVisits []ServiceVisit `json:"service_visits" yaml:"service_visits"`
	Contracts     []Contract     `json:"contracts" yaml:"contracts"`
	Alerts        []Alert        `json:"alerts" yaml:"alerts"`
}

func newMemoryState() memoryState {
	return memoryState{
		facilities:    NewCollection(domain.EntityFacility, Facility.Key, cloneFacility),
		devices:       NewCollection(domain.EntityDevice, Device.Key, cloneDevice),
		installations: NewCollection(domain.EntityInstallation, Installation.Key, cloneInstallation),
		visits:        NewCollection(domain.EntityServiceVisit, ServiceVisit.Key, cloneServiceVisit),
		contracts:     NewCollection(domain.EntityContract, Contract.Key, cloneContract),
		alerts:        NewCollection(domain.EntityAlert, Alert.Key, cloneAlert),
	}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		facilities:    s.facilities.cloneCollection(),
		devices:       s.devices.cloneCollection(),
		installations: s.installations.cloneCollection(),
		visits:        s.visits.cloneCollection(),
		contracts:     s.contracts.cloneCollection(),
		alerts:        s.alerts.cloneCollection(),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	return Snapshot{
		Facilities:    state.facilities.List(),
		Devices:       state.devices.List(),
		Installations: state.installations.List(),
		ServiceVisits: state.visits.List(),
		Contracts:     state.contracts.List(),
		Alerts:        state.alerts.List(),
	}
}

func cloneFacility(f Facility) Facility { return f }
func cloneDevice(d Device) Device       { return d }

func cloneInstallation(i Installation) Installation {
	cp := i
	cp.Checklist = slices.Clone(i.Checklist)
	cp.UnboxingPhotos = slices.Clone(i.UnboxingPhotos)
	cp.CompletionPhotos = slices.Clone(i.CompletionPhotos)
	return cp
}

func cloneServiceVisit(v ServiceVisit) ServiceVisit {
	cp := v
	cp.IssuesFound = slices.Clone(v.IssuesFound)
	cp.Attachments = slices.Clone(v.Attachments)
	return cp
}

func cloneContract(c Contract) Contract { return c }

func cloneAlert(a Alert) Alert {
	cp := a
	cp.Photos = slices.Clone(a.Photos)
	return cp
}

// Store provides an in-memory transactional store for the device domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the clock used to stamp transactions.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = now
}

// ExportState clones the current store state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// RunInTransaction executes fn within a transactional copy of the store
// state. The copy replaces the committed state only when fn succeeds and no
// rule reports a blocking violation.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{state: s.state.clone()}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return fn(newTransactionView(&snapshot))
}

type transaction struct {
	state   memoryState
	changes []Change
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

func (v transactionView) ListFacilities() []Facility        { return v.state.facilities.List() }
func (v transactionView) ListDevices() []Device             { return v.state.devices.List() }
func (v transactionView) ListInstallations() []Installation { return v.state.installations.List() }
func (v transactionView) ListServiceVisits() []ServiceVisit { return v.state.visits.List() }
func (v transactionView) ListContracts() []Contract         { return v.state.contracts.List() }
func (v transactionView) ListAlerts() []Alert               { return v.state.alerts.List() }

func (v transactionView) FindFacility(id string) (Facility, bool) {
	return v.state.facilities.Get(id)
}

func (v transactionView) FindDevice(id string) (Device, bool) {
	return v.state.devices.Get(id)
}

func (v transactionView) FindInstallation(id string) (Installation, bool) {
	return v.state.installations.Get(id)
}

func (v transactionView) FindServiceVisit(id string) (ServiceVisit, bool) {
	return v.state.visits.Get(id)
}

func (v transactionView) FindContract(id string) (Contract, bool) {
	return v.state.contracts.Get(id)
}

func (v transactionView) FindAlert(id string) (Alert, bool) {
	return v.state.alerts.Get(id)
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

func (tx *transaction) view() transactionView {
	return transactionView{state: &tx.state}
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView { return tx.view() }

func (tx *transaction) ListFacilities() []Facility        { return tx.view().ListFacilities() }
func (tx *transaction) ListDevices() []Device             { return tx.view().ListDevices() }
func (tx *transaction) ListInstallations() []Installation { return tx.view().ListInstallations() }
func (tx *transaction) ListServiceVisits() []ServiceVisit { return tx.view().ListServiceVisits() }
func (tx *transaction) ListContracts() []Contract         { return tx.view().ListContracts() }
func (tx *transaction) ListAlerts() []Alert               { return tx.view().ListAlerts() }

func (tx *transaction) FindFacility(id string) (Facility, bool) { return tx.view().FindFacility(id) }
func (tx *transaction) FindDevice(id string) (Device, bool)     { return tx.view().FindDevice(id) }
func (tx *transaction) FindInstallation(id string) (Installation, bool) {
	return tx.view().FindInstallation(id)
}
func (tx *transaction) FindServiceVisit(id string) (ServiceVisit, bool) {
	return tx.view().FindServiceVisit(id)
}
func (tx *transaction) FindContract(id string) (Contract, bool) { return tx.view().FindContract(id) }
func (tx *transaction) FindAlert(id string) (Alert, bool)       { return tx.view().FindAlert(id) }

func create[T any](tx *transaction, c *Collection[T], record T) (T, error) {
	created, err := c.Create(record)
	if err != nil {
		return created, err
	}
	tx.recordChange(Change{Entity: c.Entity(), Action: domain.ActionCreate, After: created})
	return created, nil
}

func update[T any](tx *transaction, c *Collection[T], record T) (T, error) {
	before, after, err := c.Update(record)
	if err != nil {
		return after, err
	}
	tx.recordChange(Change{Entity: c.Entity(), Action: domain.ActionUpdate, Before: before, After: after})
	return after, nil
}

func remove[T any](tx *transaction, c *Collection[T], id string) error {
	before, err := c.Delete(id)
	if err != nil {
		return err
	}
	tx.recordChange(Change{Entity: c.Entity(), Action: domain.ActionDelete, Before: before})
	return nil
}

// CreateFacility stores a new facility record.
func (tx *transaction) CreateFacility(f Facility) (Facility, error) {
	return create(tx, tx.state.facilities, f)
}

// UpdateFacility replaces an existing facility.
func (tx *transaction) UpdateFacility(f Facility) (Facility, error) {
	return update(tx, tx.state.facilities, f)
}

// DeleteFacility removes a facility from state.
func (tx *transaction) DeleteFacility(id string) error {
	return remove(tx, tx.state.facilities, id)
}

// CreateDevice stores a new device record.
func (tx *transaction) CreateDevice(d Device) (Device, error) {
	return create(tx, tx.state.devices, d)
}

// UpdateDevice replaces an existing device.
func (tx *transaction) UpdateDevice(d Device) (Device, error) {
	return update(tx, tx.state.devices, d)
}

// DeleteDevice removes a device from state.
func (tx *transaction) DeleteDevice(id string) error {
	return remove(tx, tx.state.devices, id)
}

// CreateInstallation stores a new installation record.
func (tx *transaction) CreateInstallation(i Installation) (Installation, error) {
	return create(tx, tx.state.installations, i)
}

// UpdateInstallation replaces an existing installation.
func (tx *transaction) UpdateInstallation(i Installation) (Installation, error) {
	return update(tx, tx.state.installations, i)
}

// DeleteInstallation removes an installation from state.
func (tx *transaction) DeleteInstallation(id string) error {
	return remove(tx, tx.state.installations, id)
}

// CreateServiceVisit stores a new service visit record.
func (tx *transaction) CreateServiceVisit(v ServiceVisit) (ServiceVisit, error) {
	return create(tx, tx.state.visits, v)
}

// UpdateServiceVisit replaces an existing service visit.
func (tx *transaction) UpdateServiceVisit(v ServiceVisit) (ServiceVisit, error) {
	return update(tx, tx.state.visits, v)
}

// DeleteServiceVisit removes a service visit from state.
func (tx *transaction) DeleteServiceVisit(id string) error {
	return remove(tx, tx.state.visits, id)
}

// CreateContract stores a new contract record.
func (tx *transaction) CreateContract(c Contract) (Contract, error) {
	return create(tx, tx.state.contracts, c)
}

// UpdateContract replaces an existing contract.
func (tx *transaction) UpdateContract(c Contract) (Contract, error) {
	return update(tx, tx.state.contracts, c)
}

// DeleteContract removes a contract from state.
func (tx *transaction) DeleteContract(id string) error {
	return remove(tx, tx.state.contracts, id)
}

// CreateAlert stores a new alert record.
func (tx *transaction) CreateAlert(a Alert) (Alert, error) {
	return create(tx, tx.state.alerts, a)
}

// UpdateAlert replaces an existing alert.
func (tx *transaction) UpdateAlert(a Alert) (Alert, error) {
	return update(tx, tx.state.alerts, a)
}

// DeleteAlert removes an alert from state.
func (tx *transaction) DeleteAlert(id string) error {
	return remove(tx, tx.state.alerts, id)
}
