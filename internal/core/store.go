package core

import "devicecore/internal/infra/persistence/memory"

// MemoryStore is the in-memory persistent store.
type MemoryStore = memory.Store

// Snapshot is an ordered clone of every collection.
type Snapshot = memory.Snapshot

// NewMemoryStore constructs an in-memory store evaluating engine on commit.
func NewMemoryStore(engine *RulesEngine) *MemoryStore {
	return memory.NewStore(engine)
}
