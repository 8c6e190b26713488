package domain

import (
	"strconv"
	"sync"
	"time"
)

// ID prefixes issued per entity kind. Contract ids are prefixed with their
// contract type instead.
const (
	PrefixFacility     = "FAC"
	PrefixDevice       = "DEV"
	PrefixInstallation = "INST"
	PrefixServiceVisit = "SRV"
	PrefixAlert        = "ALT"
)

// IDGenerator issues type-prefixed millisecond timestamp tokens. Tokens from
// one generator are strictly increasing, so two ids requested within the same
// millisecond still differ.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDGenerator returns a generator reading time from now. A nil now uses time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns prefix followed by the next token.
func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return prefix + strconv.FormatInt(ms, 10)
}

// PrefixFor returns the id prefix used for a newly created record of entity.
func PrefixFor(entity EntityType) string {
	switch entity {
	case EntityFacility:
		return PrefixFacility
	case EntityDevice:
		return PrefixDevice
	case EntityInstallation:
		return PrefixInstallation
	case EntityServiceVisit:
		return PrefixServiceVisit
	case EntityAlert:
		return PrefixAlert
	}
	return ""
}
