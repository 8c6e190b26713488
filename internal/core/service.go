package core

import (
	"context"
	"sync"
	"time"

	"devicecore/pkg/domain"
)

// Service is the single entry point for device store mutations and views.
// Every mutation validates, denormalizes and commits inside one store
// transaction, so it either applies fully or leaves state unchanged.
type Service struct {
	store   PersistentStore
	engine  *RulesEngine
	clock   Clock
	logger  Logger
	audit   AuditRecorder
	metrics MetricsRecorder
	tracer  Tracer
	ids     *domain.IDGenerator
	views   ViewDefaults

	subMu       sync.Mutex
	subscribers []subscriber
	nextSubID   int
}

// NewService constructs a service backed by the supplied store. When no
// clock option is given the store's clock is used.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	options := defaultServiceOptions()
	if nowFn := store.NowFunc(); nowFn != nil {
		options.clock = ClockFunc(nowFn)
	}
	for _, opt := range opts {
		opt(&options)
	}
	ids := options.ids
	if ids == nil {
		ids = domain.NewIDGenerator(options.clock.Now)
	}
	svc := &Service{
		store:   store,
		clock:   options.clock,
		logger:  options.logger,
		audit:   options.audit,
		metrics: options.metrics,
		tracer:  options.tracer,
		ids:     ids,
		views:   options.views,
	}
	if ms, ok := store.(*MemoryStore); ok {
		svc.engine = ms.RulesEngine()
	}
	return svc
}

// NewInMemoryService creates a service and in-memory store with the given rules engine.
func NewInMemoryService(engine *RulesEngine, opts ...ServiceOption) *Service {
	return NewService(NewMemoryStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// Today returns the current calendar day according to the service clock.
func (s *Service) Today() domain.Date {
	return domain.DateOf(s.clock.Now())
}

// newID issues an id for a record of entity created without one.
func (s *Service) newID(entity EntityType) string {
	return s.ids.Next(domain.PrefixFor(entity))
}

// Views returns the default view limits.
func (s *Service) Views() ViewDefaults {
	return s.views
}

type operationMeta struct {
	entity EntityType
	action Action
}

var operations = map[string]operationMeta{
	"create_facility":      {EntityFacility, ActionCreate},
	"update_facility":      {EntityFacility, ActionUpdate},
	"delete_facility":      {EntityFacility, ActionDelete},
	"create_device":        {EntityDevice, ActionCreate},
	"update_device":        {EntityDevice, ActionUpdate},
	"delete_device":        {EntityDevice, ActionDelete},
	"create_installation":  {EntityInstallation, ActionCreate},
	"update_installation":  {EntityInstallation, ActionUpdate},
	"delete_installation":  {EntityInstallation, ActionDelete},
	"create_service_visit": {EntityServiceVisit, ActionCreate},
	"update_service_visit": {EntityServiceVisit, ActionUpdate},
	"delete_service_visit": {EntityServiceVisit, ActionDelete},
	"create_contract":      {EntityContract, ActionCreate},
	"update_contract":      {EntityContract, ActionUpdate},
	"delete_contract":      {EntityContract, ActionDelete},
	"create_alert":         {EntityAlert, ActionCreate},
	"update_alert":         {EntityAlert, ActionUpdate},
	"delete_alert":         {EntityAlert, ActionDelete},
	"acknowledge_alert":    {EntityAlert, ActionUpdate},
	"resolve_alert":        {EntityAlert, ActionUpdate},
}

// DescribeOperation returns the entity kind and action behind a service
// operation name, as passed to MetricsRecorder and Tracer.
func DescribeOperation(op string) (EntityType, Action, bool) {
	meta, ok := operations[op]
	return meta.entity, meta.action, ok
}

// run executes fn in a store transaction and reports the outcome to the
// tracer, metrics, audit trail, logger and, on success, subscribers. fn
// returns the id of the record it touched.
func (s *Service) run(ctx context.Context, op string, fn func(tx Transaction) (string, error)) (Result, error) {
	ctx, span := s.tracer.Start(ctx, op)
	ctx = withToday(ctx, s.Today())
	start := time.Now()

	var entityID string
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		id, err := fn(tx)
		entityID = id
		return err
	})
	duration := time.Since(start)

	span.End(err)
	s.metrics.Observe(ctx, op, err == nil, duration)
	if err != nil {
		s.recordAuditError(ctx, op, entityID, duration, err)
		s.logger.Error("service operation failed", "operation", op, "entity_id", entityID, "error", err)
		return res, err
	}
	s.recordAuditSuccess(ctx, op, entityID, duration)
	for _, v := range res.Filter(SeverityWarn) {
		s.logger.Warn("rule violation", "rule", v.Rule, "entity", v.Entity, "entity_id", v.EntityID, "message", v.Message)
	}
	s.logger.Debug("service operation completed", "operation", op, "entity_id", entityID, "duration", duration)
	if meta, ok := operations[op]; ok {
		s.notify(Event{Entity: meta.entity, Action: meta.action, ID: entityID, Operation: op})
	}
	return res, nil
}

func (s *Service) recordAuditSuccess(ctx context.Context, op, entityID string, duration time.Duration) {
	s.recordAudit(ctx, op, entityID, duration, AuditStatusSuccess, nil)
}

func (s *Service) recordAuditError(ctx context.Context, op, entityID string, duration time.Duration, err error) {
	s.recordAudit(ctx, op, entityID, duration, AuditStatusError, err)
}

func (s *Service) recordAudit(ctx context.Context, op, entityID string, duration time.Duration, status AuditStatus, err error) {
	meta, ok := operations[op]
	if !ok {
		return
	}
	entry := AuditEntry{
		Operation: op,
		Entity:    meta.entity,
		Action:    meta.action,
		EntityID:  entityID,
		Status:    status,
		Duration:  duration,
		Timestamp: s.clock.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	s.audit.Record(ctx, entry)
}

// view runs fn against a consistent read snapshot.
func (s *Service) view(ctx context.Context, fn func(TransactionView) error) error {
	return s.store.View(ctx, fn)
}
