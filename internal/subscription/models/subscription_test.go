package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/rdf"
)

func TestSubscriptionStatements(t *testing.T) {
	sub := Subscription{
		URI:        "http://x/?c=resource&id=abc",
		Subscriber: "http://x/?c=user&id=alice",
		Hub:        "https://hub.example/",
		Topic:      "https://feeds.example/f1",
		Callback:   "http://x/?c=push&a=callback",
	}
	st := sub.Statements()
	assert.Equal(t, 5, st.Len())
	assert.Equal(t, []rdf.Term{rdf.URI(sub.URI)}, st[sub.Subscriber][rdf.DSSNSubscribedTo])
	assert.Equal(t, []rdf.Term{rdf.URI(rdf.DSSNSubscription)}, st[sub.URI][rdf.RDFType])
	assert.Equal(t, []rdf.Term{rdf.URI(sub.Topic)}, st[sub.URI][rdf.DSSNSubscriptionTopic])
}

func TestSubscribeRequestParse(t *testing.T) {
	tests := []struct {
		name    string
		req     SubscribeRequest
		wantErr bool
	}{
		{name: "resource only", req: SubscribeRequest{Resource: " http://x/r1 "}},
		{name: "all fields", req: SubscribeRequest{Subscriber: "http://x/u1", Resource: "http://x/r1", Feed: "http://x/f1"}},
		{name: "missing resource", req: SubscribeRequest{Feed: "http://x/f1"}, wantErr: true},
		{name: "relative resource", req: SubscribeRequest{Resource: "r1"}, wantErr: true},
		{name: "injection attempt in subscriber", req: SubscribeRequest{Subscriber: "http://x/u1> ?p ?o . <http://x/u2", Resource: "http://x/r1"}, wantErr: true},
		{name: "bad feed", req: SubscribeRequest{Resource: "http://x/r1", Feed: "not a url"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			parsed, err := tt.req.Parse()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, rdf.IRI("http://x/r1"), parsed.Resource)
		})
	}
}
