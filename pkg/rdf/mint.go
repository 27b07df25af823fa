package rdf

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Minter derives application IRIs from the deployment base URI.
type Minter struct {
	base string
}

// NewMinter validates base and returns a Minter. A trailing "?" or "&" is
// stripped so query parameters can be appended uniformly.
func NewMinter(base string) (*Minter, error) {
	iri, err := ParseIRI(base)
	if err != nil {
		return nil, fmt.Errorf("base uri: %w", err)
	}
	return &Minter{base: strings.TrimRight(string(iri), "?&")}, nil
}

// Base returns the normalized base URI.
func (m *Minter) Base() string {
	return m.base
}

// withQuery appends key/value pairs in the order given. Existing graphs hold
// IRIs such as ?c=push&a=callback verbatim, so the order is part of the
// identity and must not be sorted.
func (m *Minter) withQuery(pairs ...string) IRI {
	var b strings.Builder
	b.WriteString(m.base)
	sep := "?"
	if strings.Contains(m.base, "?") {
		sep = "&"
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(sep)
		b.WriteString(url.QueryEscape(pairs[i]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pairs[i+1]))
		sep = "&"
	}
	return IRI(b.String())
}

// UserURI is the account IRI for a session user id.
func (m *Minter) UserURI(userID string) IRI {
	return m.withQuery("c", "user", "id", userID)
}

// CallbackURI is the process-wide push callback endpoint handed to hubs.
func (m *Minter) CallbackURI() IRI {
	return m.withQuery("c", "push", "a", "callback")
}

// ActivityFeedURI is the feed that publishes activities about resource.
func (m *Minter) ActivityFeedURI(resource IRI) IRI {
	return m.withQuery("c", "feed", "a", "getFeed", "uri", string(resource))
}

// SubscriptionURI mints a fresh subscription identifier from 122 bits of
// crypto/rand entropy.
func (m *Minter) SubscriptionURI() (IRI, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate subscription id: %w", err)
	}
	return m.withQuery("c", "resource", "id", hex.EncodeToString(id[:])), nil
}
