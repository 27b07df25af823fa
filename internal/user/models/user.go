package models

import "pushgraph/pkg/rdf"

// UnknownName is the display name of accounts without a foaf:accountName.
const UnknownName = "unknown"

// User is an account identity with its display name.
type User struct {
	URI  rdf.IRI `json:"uri"`
	Name string  `json:"name"`
}
