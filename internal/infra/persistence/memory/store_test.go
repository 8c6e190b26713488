package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"devicecore/pkg/domain"
)

func TestStoreRunInTransactionAndSnapshots(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, ok := tx.FindFacility("missing"); ok {
			t.Fatalf("expected missing facility lookup")
		}
		if _, err := tx.CreateFacility(domain.Facility{ID: "FAC1", Name: "Acme"}); err != nil {
			return err
		}
		if len(tx.Snapshot().ListFacilities()) != 1 {
			t.Fatalf("snapshot should see uncommitted create")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run transaction: %v", err)
	}
	snapshot := store.ExportState()
	if len(snapshot.Facilities) != 1 {
		t.Fatalf("expected persisted facility")
	}
	snapshot.Facilities[0].Name = "changed"
	if got := store.ExportState().Facilities[0].Name; got != "Acme" {
		t.Fatalf("export must copy state, got %q", got)
	}
	if store.RulesEngine() == nil {
		t.Fatalf("expected rules engine")
	}
	if store.NowFunc() == nil {
		t.Fatalf("expected now func")
	}
}

func TestFailedTransactionLeavesStateUnchanged(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateFacility(domain.Facility{ID: "FAC1", Name: "Acme"})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, err := tx.CreateDevice(domain.Device{ID: "DEV1", FacilityID: "FAC1"}); err != nil {
			return err
		}
		_, err := tx.CreateFacility(domain.Facility{ID: "FAC1"})
		return err
	})
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
	if got := len(store.ExportState().Devices); got != 0 {
		t.Fatalf("expected no partial write, found %d devices", got)
	}
}

func TestStoreRuleViolation(t *testing.T) {
	store := NewStore(domain.NewRulesEngine())
	store.RulesEngine().Register(blockingRule{})
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, e := tx.CreateFacility(domain.Facility{ID: "FAC1"})
		return e
	})
	var violation domain.RuleViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected rule violation error, got %v", err)
	}
	if len(store.ExportState().Facilities) != 0 {
		t.Fatalf("blocked transaction must not commit")
	}
}

func TestRulesReceiveRecordedChanges(t *testing.T) {
	engine := domain.NewRulesEngine()
	capture := &captureRule{}
	engine.Register(capture)
	store := NewStore(engine)
	ctx := context.Background()
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, err := tx.CreateFacility(domain.Facility{ID: "FAC1", Name: "Acme"}); err != nil {
			return err
		}
		if _, err := tx.UpdateFacility(domain.Facility{ID: "FAC1", Name: "Acme West"}); err != nil {
			return err
		}
		return tx.DeleteFacility("FAC1")
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if len(capture.changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(capture.changes))
	}
	update := capture.changes[1]
	if update.Action != domain.ActionUpdate || update.Before.(domain.Facility).Name != "Acme" || update.After.(domain.Facility).Name != "Acme West" {
		t.Fatalf("unexpected update change %+v", update)
	}
	if capture.changes[2].Action != domain.ActionDelete || capture.changes[2].ID() != "FAC1" {
		t.Fatalf("unexpected delete change %+v", capture.changes[2])
	}
}

func TestTransactionPrimitiveErrors(t *testing.T) {
	store := NewStore(nil)
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.UpdateAlert(domain.Alert{ID: "missing"}); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found on update, got %v", err)
		}
		if err := tx.DeleteContract("missing"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not found on delete, got %v", err)
		}
		if _, err := tx.CreateServiceVisit(domain.ServiceVisit{ID: "SRV1"}); err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := tx.CreateServiceVisit(domain.ServiceVisit{ID: "SRV1"}); !errors.Is(err, domain.ErrDuplicateKey) {
			t.Fatalf("expected duplicate key, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}

func TestViewIsIsolatedFromLaterCommits(t *testing.T) {
	store := NewStore(nil)
	store.SetNowFunc(func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) })
	ctx := context.Background()
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.CreateInstallation(domain.Installation{ID: "INST1", Checklist: domain.DefaultChecklist()})
		return err
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := store.View(ctx, func(view domain.TransactionView) error {
		inst, ok := view.FindInstallation("INST1")
		if !ok {
			t.Fatalf("expected installation")
		}
		inst.Checklist[0].Completed = true
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	_ = store.View(ctx, func(view domain.TransactionView) error {
		inst, _ := view.FindInstallation("INST1")
		if inst.Checklist[0].Completed {
			t.Fatalf("mutating a read copy must not leak into the store")
		}
		return nil
	})
	if got := store.NowFunc()(); got.Day() != 15 {
		t.Fatalf("expected overridden clock, got %v", got)
	}
}

type blockingRule struct{}

func (blockingRule) Name() string { return "block" }

func (blockingRule) Evaluate(context.Context, domain.RuleView, []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	res.Merge(domain.Result{Violations: []domain.Violation{{Rule: "block", Severity: domain.SeverityBlock}}})
	return res, nil
}

type captureRule struct{ changes []domain.Change }

func (*captureRule) Name() string { return "capture" }

func (r *captureRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	r.changes = append([]domain.Change(nil), changes...)
	return domain.Result{}, nil
}
