package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushgraph/internal/graph"
	"pushgraph/pkg/rdf"
)

// TestTranslateBindsConstants guards against caller values reaching the SQL
// text: every IRI and literal must be a bind parameter.
func TestTranslateBindsConstants(t *testing.T) {
	hostile := rdf.IRI("http://x/u1' OR '1'='1")
	q := graph.Select("name").
		Where(graph.U(hostile), graph.U(rdf.FOAFAccountName), graph.V("name"))

	query, args, vars, err := selectSQL(Postgres, "http://x/g", q)
	require.NoError(t, err)

	assert.NotContains(t, query, "OR '1'='1")
	assert.Contains(t, args, string(hostile))
	assert.Equal(t, []string{"name"}, vars)
	assert.Equal(t,
		"SELECT t0.object, t0.object_kind FROM triples t0 WHERE t0.graph = $1 AND t0.subject = $2 AND t0.predicate = $3 ORDER BY t0.id",
		query,
	)
}

func TestTranslateJoinsAndDistinct(t *testing.T) {
	q := graph.Select("resUri").
		Where(graph.U("http://x/u1"), graph.U(rdf.DSSNSubscribedTo), graph.V("subUri")).
		Where(graph.V("subUri"), graph.U(rdf.DSSNSubscriptionTopic), graph.V("feedUri")).
		Where(graph.V("resUri"), graph.U(rdf.DSSNActivityFeed), graph.V("feedUri")).
		WithDistinct()

	query, args, _, err := selectSQL(SQLite, "http://x/g", q)
	require.NoError(t, err)

	assert.Contains(t, query, "FROM triples t0 CROSS JOIN triples t1 CROSS JOIN triples t2")
	assert.Contains(t, query, "t1.subject = t0.object AND t0.object_kind = 'uri'")
	assert.Contains(t, query, "t2.object = t1.object AND t2.object_kind = t1.object_kind")
	assert.Contains(t, query, "GROUP BY t2.subject ORDER BY MIN(t0.id)")
	assert.Contains(t, query, "WHERE t0.graph = ?1 AND t0.subject = ?2")
	assert.Len(t, args, 5)
}

func TestAskSQL(t *testing.T) {
	q := graph.Ask().
		Where(graph.U("http://x/u1"), graph.U(rdf.DSSNSubscribedTo), graph.V("sub")).
		Where(graph.V("sub"), graph.U(rdf.DSSNSubscriptionTopic), graph.U("http://x/f1"))

	query, args, err := askSQL(Postgres, "http://x/g", q)
	require.NoError(t, err)
	assert.Contains(t, query, "SELECT EXISTS (SELECT 1 FROM triples t0 CROSS JOIN triples t1 WHERE")
	assert.Contains(t, query, "t1.object = $5 AND t1.object_kind = $6")
	assert.Equal(t, []any{
		"http://x/g",
		"http://x/u1",
		string(rdf.DSSNSubscribedTo),
		string(rdf.DSSNSubscriptionTopic),
		"http://x/f1",
		"uri",
	}, args)
}
