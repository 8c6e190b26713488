package memory

import (
	"errors"
	"slices"
	"testing"

	"devicecore/pkg/domain"
)

func newDeviceCollection() *Collection[domain.Device] {
	return NewCollection(domain.EntityDevice, domain.Device.Key, nil)
}

func TestCollectionPreservesInsertionOrderAcrossUpdates(t *testing.T) {
	c := newDeviceCollection()
	for _, id := range []string{"DEV3", "DEV1", "DEV2"} {
		if _, err := c.Create(domain.Device{ID: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	before, after, err := c.Update(domain.Device{ID: "DEV1", Model: "V60"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if before.Model != "" || after.Model != "V60" {
		t.Fatalf("unexpected update pair %+v %+v", before, after)
	}
	var ids []string
	for d := range c.All() {
		ids = append(ids, d.ID)
	}
	if !slices.Equal(ids, []string{"DEV3", "DEV1", "DEV2"}) {
		t.Fatalf("update must not reorder, got %v", ids)
	}
	if got, _ := c.Get("DEV1"); got.Model != "V60" {
		t.Fatalf("expected full replacement, got %+v", got)
	}
}

func TestCollectionErrors(t *testing.T) {
	c := newDeviceCollection()
	if _, err := c.Create(domain.Device{ID: "DEV1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.Create(domain.Device{ID: "DEV1"}); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
	if _, _, err := c.Update(domain.Device{ID: "DEV9"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if _, err := c.Delete("DEV9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("failed operations must not change size")
	}
}

func TestCollectionAllIsRestartableAndStoppable(t *testing.T) {
	c := newDeviceCollection()
	for _, id := range []string{"DEV1", "DEV2", "DEV3"} {
		_, _ = c.Create(domain.Device{ID: id})
	}
	seq := c.All()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected restartable sequence, got %d then %d", len(first), len(second))
	}
	seen := 0
	for range seq {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("expected early stop at 2, got %d", seen)
	}
	if _, err := c.Delete("DEV2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ids := make([]string, 0)
	for d := range c.All() {
		ids = append(ids, d.ID)
	}
	if !slices.Equal(ids, []string{"DEV1", "DEV3"}) {
		t.Fatalf("unexpected order after delete %v", ids)
	}
}

func TestCollectionClonesSlices(t *testing.T) {
	c := NewCollection(domain.EntityAlert, domain.Alert.Key, cloneAlert)
	photos := []string{"a.jpg"}
	if _, err := c.Create(domain.Alert{ID: "ALT1", Photos: photos}); err != nil {
		t.Fatalf("create: %v", err)
	}
	photos[0] = "changed.jpg"
	got, _ := c.Get("ALT1")
	if got.Photos[0] != "a.jpg" {
		t.Fatalf("stored record aliases caller slice")
	}
	got.Photos[0] = "mutated.jpg"
	again, _ := c.Get("ALT1")
	if again.Photos[0] != "a.jpg" {
		t.Fatalf("read copy aliases stored slice")
	}
	cp := c.cloneCollection()
	if _, err := cp.Delete("ALT1"); err != nil {
		t.Fatalf("delete from clone: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("clone must be independent")
	}
}
