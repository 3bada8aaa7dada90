// Package test provides store test helpers backed by a throwaway
// SQLite database file.
package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repgenie/repgenie/internal/profile"
	"github.com/repgenie/repgenie/store"
	"github.com/repgenie/repgenie/store/db/sqlite"
)

// NewTestingStore creates a migrated store on a fresh SQLite file under
// the test's temp dir. Closed automatically at test cleanup.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	dir := t.TempDir()
	p := &profile.Profile{
		Mode:   "dev",
		Data:   dir,
		Driver: "sqlite",
	}
	require.NoError(t, p.Validate())

	driver, err := sqlite.NewDB(p)
	require.NoError(t, err)

	s := store.New(driver, p)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
