package models

import (
	"time"

	"pushgraph/pkg/rdf"
)

// Notification is a resource that targets users via dssn:notify. It is
// produced elsewhere and only read here.
type Notification struct {
	URI     rdf.IRI    `json:"uri"`
	Types   []rdf.IRI  `json:"types,omitempty"`
	Content string     `json:"content,omitempty"`
	Created *time.Time `json:"created,omitempty"`
	Targets []rdf.IRI  `json:"targets,omitempty"`
	// Properties holds every predicate of the notification with its values,
	// including the ones lifted into the fields above.
	Properties map[rdf.IRI][]string `json:"properties"`
}

// FromProperties lifts the well-known predicates out of props.
func FromProperties(uri rdf.IRI, props map[rdf.IRI][]rdf.Term) *Notification {
	n := &Notification{URI: uri, Properties: make(map[rdf.IRI][]string, len(props))}
	for predicate, objects := range props {
		values := make([]string, 0, len(objects))
		for _, o := range objects {
			values = append(values, o.Value)
		}
		n.Properties[predicate] = values

		switch predicate {
		case rdf.RDFType:
			n.Types = iris(objects)
		case rdf.DSSNNotify:
			n.Targets = iris(objects)
		case rdf.SIOCContent:
			if len(objects) > 0 {
				n.Content = objects[0].Value
			}
		case rdf.DCTermsCreated:
			for _, o := range objects {
				if t, err := time.Parse(time.RFC3339, o.Value); err == nil {
					n.Created = &t
					break
				}
			}
		}
	}
	return n
}

func iris(terms []rdf.Term) []rdf.IRI {
	var out []rdf.IRI
	for _, t := range terms {
		if t.IsURI() {
			out = append(out, t.IRI())
		}
	}
	return out
}
