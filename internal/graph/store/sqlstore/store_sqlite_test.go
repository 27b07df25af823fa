package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"pushgraph/internal/graph"
	"pushgraph/internal/graph/store/storetest"
	"pushgraph/internal/platform/database"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := New(db, SQLite)
	require.NoError(t, store.EnsureSchema(ctx))
	return store
}

func TestSQLiteStoreConformance(t *testing.T) {
	suite.Run(t, &storetest.ConformanceSuite{
		NewStore: func() graph.Store { return newSQLiteStore(t) },
	})
}

func TestEnsureSchemaIsRepeatable(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.EnsureSchema(context.Background()))
}
