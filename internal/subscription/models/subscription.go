package models

import (
	"strings"

	dErrors "pushgraph/pkg/domain-errors"
	"pushgraph/pkg/rdf"
)

// Subscription is one hub subscription record as persisted in the graph.
type Subscription struct {
	URI        rdf.IRI `json:"uri"`
	Subscriber rdf.IRI `json:"subscriber"`
	Hub        rdf.IRI `json:"hub"`
	Topic      rdf.IRI `json:"topic"`
	Callback   rdf.IRI `json:"callback"`
}

// Statements returns the subscription triples plus the subscriber link.
func (s Subscription) Statements() rdf.Statements {
	return rdf.Statements{}.
		Add(s.URI, rdf.RDFType, rdf.URI(rdf.DSSNSubscription)).
		Add(s.URI, rdf.DSSNSubscriptionCallback, rdf.URI(s.Callback)).
		Add(s.URI, rdf.DSSNSubscriptionHub, rdf.URI(s.Hub)).
		Add(s.URI, rdf.DSSNSubscriptionTopic, rdf.URI(s.Topic)).
		Add(s.Subscriber, rdf.DSSNSubscribedTo, rdf.URI(s.URI))
}

// SubscribeRequest is the body of POST /subscriptions. Subscriber defaults to
// the session user and Feed to the resource's activity feed.
type SubscribeRequest struct {
	Subscriber string `json:"subscriber,omitempty"`
	Resource   string `json:"resource"`
	Feed       string `json:"feed,omitempty"`
}

func (r *SubscribeRequest) Normalize() {
	r.Subscriber = strings.TrimSpace(r.Subscriber)
	r.Resource = strings.TrimSpace(r.Resource)
	r.Feed = strings.TrimSpace(r.Feed)
}

// Parsed holds the validated IRIs of a SubscribeRequest.
type Parsed struct {
	Subscriber rdf.IRI
	Resource   rdf.IRI
	Feed       rdf.IRI
}

// Parse validates the request. Optional fields stay zero when absent.
func (r *SubscribeRequest) Parse() (Parsed, error) {
	var p Parsed
	var err error
	if r.Resource == "" {
		return p, dErrors.New(dErrors.CodeValidation, "resource is required")
	}
	if p.Resource, err = rdf.ParseIRI(r.Resource); err != nil {
		return p, dErrors.Wrap(err, dErrors.CodeValidation, "resource must be an absolute IRI")
	}
	if r.Subscriber != "" {
		if p.Subscriber, err = rdf.ParseIRI(r.Subscriber); err != nil {
			return p, dErrors.Wrap(err, dErrors.CodeValidation, "subscriber must be an absolute IRI")
		}
	}
	if r.Feed != "" {
		if p.Feed, err = rdf.ParseIRI(r.Feed); err != nil {
			return p, dErrors.Wrap(err, dErrors.CodeValidation, "feed must be an absolute IRI")
		}
	}
	return p, nil
}

// Result reports the outcome of a subscribe call.
type Result struct {
	Created    bool    `json:"created"`
	Subscriber rdf.IRI `json:"subscriber"`
	Resource   rdf.IRI `json:"resource,omitempty"`
	Feed       rdf.IRI `json:"feed"`
	Topic      rdf.IRI `json:"topic"`
	Hub        rdf.IRI `json:"hub,omitempty"`
}
