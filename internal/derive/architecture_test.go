package derive

import (
	"testing"

	"devicecore/testutil"
)

func TestDeriveDependsOnlyOnDomain(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.InternalImportForbidden, "derivations are pure functions over pkg/domain")
}
