package domain

import (
	"testing"

	"devicecore/testutil"
)

// TestDomainDoesNotImportInternal keeps the domain layer free of any
// dependency on implementation packages.
func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "pkg/domain must not depend on internal packages")
}
