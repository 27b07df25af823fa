package feed

import (
	"pushgraph/pkg/rdf"
)

// Deriver maps local resources to the activity feed the application serves
// for them.
type Deriver struct {
	minter *rdf.Minter
}

// NewDeriver returns a Deriver minting feed IRIs under minter's base.
func NewDeriver(minter *rdf.Minter) *Deriver {
	return &Deriver{minter: minter}
}

// DeriveFeedURI returns the activity feed IRI for resource.
func (d *Deriver) DeriveFeedURI(resource rdf.IRI) rdf.IRI {
	return d.minter.ActivityFeedURI(resource)
}
