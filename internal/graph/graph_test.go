package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushgraph/internal/graph"
	"pushgraph/internal/graph/store/memory"
	"pushgraph/pkg/rdf"
)

func TestAnswerTruth(t *testing.T) {
	tests := []struct {
		name      string
		answer    graph.Answer
		want      bool
		ambiguous bool
	}{
		{"boolean true", graph.BooleanAnswer(true), true, false},
		{"boolean false", graph.BooleanAnswer(false), false, false},
		{"non-empty result set", graph.RowsAnswer([]graph.Binding{{"x": rdf.URI("http://x/1")}}), true, false},
		{"empty result set", graph.RowsAnswer(nil), false, false},
		{"no reply at all", graph.Answer{}, false, true},
		{"boolean and rows at once", graph.Answer{Boolean: new(bool), Rows: []graph.Binding{{}}, HasRows: true}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.answer.Truth()
			if tt.ambiguous {
				require.Error(t, err)
				assert.ErrorIs(t, err, graph.ErrAmbiguousAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryBuilder(t *testing.T) {
	base := graph.Select("feedUri").
		Where(graph.U("http://x/u1"), graph.U(rdf.DSSNSubscribedTo), graph.V("subUri"))
	extended := base.Where(graph.V("subUri"), graph.U(rdf.DSSNSubscriptionTopic), graph.V("feedUri"))

	assert.Len(t, base.Patterns, 1, "Where must not mutate the receiver")
	assert.Len(t, extended.Patterns, 2)
	require.Error(t, base.Validate(), "feedUri is not bound by base")
	require.NoError(t, extended.Validate())

	assert.Equal(t,
		"SELECT ?feedUri WHERE { <http://x/u1> <http://purl.org/net/dssn/subscribedTo> ?subUri . "+
			"?subUri <http://purl.org/net/dssn/subscriptionTopic> ?feedUri . }",
		extended.String(),
	)

	all := graph.Select().
		Where(graph.V("s"), graph.V("p"), graph.V("o")).
		Where(graph.V("o"), graph.U(rdf.RDFType), graph.V("t"))
	assert.Equal(t, []string{"s", "p", "o", "t"}, all.Projection())

	require.Error(t, graph.Ask().Validate(), "query without patterns")
	require.Error(t, graph.Select("s").Where(graph.V("s"), graph.L("p"), graph.V("o")).Validate())
	require.Error(t, graph.Select("s").Where(graph.V("s"), graph.V("p"), graph.V("o")).WithLimit(-1).Validate())
}

type failingStore struct {
	graph.Store
	err error
}

func (f failingStore) Write(context.Context, rdf.IRI, rdf.Statements) error {
	return f.err
}

func TestModel(t *testing.T) {
	ctx := context.Background()

	t.Run("requires store and graph", func(t *testing.T) {
		_, err := graph.NewModel(nil, "http://x/g")
		require.Error(t, err)
		_, err = graph.NewModel(memory.New(), "")
		require.Error(t, err)
	})

	t.Run("scopes reads and writes to its graph", func(t *testing.T) {
		store := memory.New()
		model, err := graph.NewModel(store, "http://x/g")
		require.NoError(t, err)

		require.NoError(t, model.AddStatement(ctx, "http://x/r1", rdf.DSSNActivityFeed, rdf.URI("http://x/f1")))
		assert.Equal(t, 1, store.Len("http://x/g"))
		assert.Equal(t, 0, store.Len("http://x/other"))

		rows, err := model.Select(ctx, graph.Select("r").
			Where(graph.V("r"), graph.U(rdf.DSSNActivityFeed), graph.U("http://x/f1")))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		iri, ok := rows[0].IRI("r")
		assert.True(t, ok)
		assert.Equal(t, rdf.IRI("http://x/r1"), iri)
	})

	t.Run("empty write is a no-op", func(t *testing.T) {
		model, err := graph.NewModel(failingStore{err: errors.New("must not be called")}, "http://x/g")
		require.NoError(t, err)
		require.NoError(t, model.Write(ctx, rdf.Statements{}))
	})

	t.Run("propagates write failures", func(t *testing.T) {
		cause := errors.New("disk full")
		model, err := graph.NewModel(failingStore{err: cause}, "http://x/g")
		require.NoError(t, err)
		err = model.AddStatement(ctx, "http://x/r1", rdf.DSSNActivityFeed, rdf.URI("http://x/f1"))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("rejects invalid queries before reaching the store", func(t *testing.T) {
		model, err := graph.NewModel(memory.New(), "http://x/g")
		require.NoError(t, err)
		_, err = model.Select(ctx, graph.Select("x"))
		require.Error(t, err)
		_, err = model.Ask(ctx, graph.Ask())
		require.Error(t, err)
	})
}
