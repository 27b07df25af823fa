package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseIRI_TrustBoundary covers values arriving from request parameters.
func TestParseIRI_TrustBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"relative path", "users/1", true},
		{"query break-out attempt", "http://x.org/u> } ; DROP", true},
		{"embedded newline", "http://x.org/u\n1", true},
		{"null byte", "http://x.org/\x00", true},
		{"http iri", "http://example.org/xodx/?c=user&id=alice", false},
		{"urn", "urn:uuid:550e8400-e29b-41d4-a716-446655440000", false},
		{"surrounding whitespace trimmed", "  http://example.org/a  ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIRI(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStatements(t *testing.T) {
	st := Statements{}
	st.Add("http://x/sub1", RDFType, URI(DSSNSubscription))
	st.Add("http://x/sub1", DSSNSubscriptionTopic, URI("http://x/feed"))
	st.Add("http://x/u1", DSSNSubscribedTo, URI("http://x/sub1"))

	assert.Equal(t, 3, st.Len())

	triples := st.Triples()
	require.Len(t, triples, 3)
	assert.Equal(t, IRI("http://x/sub1"), triples[0].Subject)
	assert.Equal(t, IRI("http://x/u1"), triples[2].Subject)

	merged := Statements{}.Merge(st).Add("http://x/u1", FOAFAccountName, Literal("alice"))
	assert.Equal(t, 4, merged.Len())
	assert.Equal(t, 3, st.Len(), "merge must not alias the source")
}

func TestMinter(t *testing.T) {
	m, err := NewMinter("http://example.org/xodx/")
	require.NoError(t, err)

	assert.Equal(t, IRI("http://example.org/xodx/?c=user&id=alice"), m.UserURI("alice"))
	assert.Equal(t, IRI("http://example.org/xodx/?c=push&a=callback"), m.CallbackURI())
	assert.Equal(t,
		IRI("http://example.org/xodx/?c=feed&a=getFeed&uri=http%3A%2F%2Fexample.org%2Fxodx%2F%3Fc%3Dperson%26id%3Dbob"),
		m.ActivityFeedURI("http://example.org/xodx/?c=person&id=bob"),
	)

	t.Run("subscription ids are unique and hex encoded", func(t *testing.T) {
		seen := make(map[IRI]struct{})
		for i := 0; i < 1000; i++ {
			iri, err := m.SubscriptionURI()
			require.NoError(t, err)
			_, dup := seen[iri]
			require.False(t, dup)
			seen[iri] = struct{}{}

			idx := strings.Index(string(iri), "id=")
			require.NotEqual(t, -1, idx)
			assert.Len(t, string(iri)[idx+3:], 32)
		}
	})

	t.Run("parameters keep the order stored graphs already use", func(t *testing.T) {
		m, err := NewMinter("http://t61.comiles.eu/xodx/")
		require.NoError(t, err)
		assert.Equal(t,
			IRI("http://t61.comiles.eu/xodx/?c=feed&a=getFeed&uri=http%3A%2F%2Ft61.comiles.eu%2Fxodx%2F%3Fc%3Dperson%26id%3Dsplatte"),
			m.ActivityFeedURI("http://t61.comiles.eu/xodx/?c=person&id=splatte"),
		)
		assert.Equal(t, IRI("http://t61.comiles.eu/xodx/?c=push&a=callback"), m.CallbackURI())

		sub, err := m.SubscriptionURI()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(sub), "http://t61.comiles.eu/xodx/?c=resource&id="))
	})

	t.Run("trailing separator is stripped", func(t *testing.T) {
		m, err := NewMinter("http://example.org/index.php?")
		require.NoError(t, err)
		assert.Equal(t, IRI("http://example.org/index.php?c=user&id=alice"), m.UserURI("alice"))
	})

	t.Run("base with query appends with ampersand", func(t *testing.T) {
		m, err := NewMinter("http://example.org/index.php?app=xodx")
		require.NoError(t, err)
		assert.Equal(t, IRI("http://example.org/index.php?app=xodx&c=user&id=alice"), m.UserURI("alice"))
	})

	t.Run("rejects relative base", func(t *testing.T) {
		_, err := NewMinter("/xodx")
		require.Error(t, err)
	})
}
