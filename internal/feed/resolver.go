// Package feed discovers the push hub and canonical topic of a feed and
// derives activity feed IRIs for local resources.
package feed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pushgraph/pkg/rdf"
)

var (
	// ErrNoHub is returned when neither the feed nor the configuration name a hub.
	ErrNoHub = errors.New("feed advertises no hub")
	// ErrFetch wraps transport and status failures while fetching the feed.
	ErrFetch = errors.New("fetch feed")
)

var tracer = otel.Tracer("pushgraph/internal/feed")

// Topic is the result of discovery: where to subscribe and what to subscribe to.
type Topic struct {
	Hub  rdf.IRI
	Self rdf.IRI
}

// Resolver performs WebSub discovery over HTTP.
type Resolver struct {
	client       *http.Client
	defaultHub   rdf.IRI
	maxBodyBytes int64
	localBase    string
	logger       *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the HTTP client used for discovery.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.client = c
	}
}

// WithTimeout bounds a single discovery request.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.client = &http.Client{Timeout: d, Transport: r.client.Transport}
		}
	}
}

// WithDefaultHub sets the hub used for feeds that do not advertise one.
func WithDefaultHub(hub rdf.IRI) Option {
	return func(r *Resolver) {
		r.defaultHub = hub
	}
}

// WithMaxBodyBytes caps how much of a feed document is scanned for links.
func WithMaxBodyBytes(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

// WithLocalBase marks feeds under base as served by this deployment. They are
// not fetched; their hub is the default hub and their topic is the feed IRI.
func WithLocalBase(base string) Option {
	return func(r *Resolver) {
		r.localBase = base
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver builds a Resolver with a 10s default timeout.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client:       &http.Client{Timeout: 10 * time.Second},
		maxBodyBytes: 1 << 20,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches feedURL and returns its hub and canonical self URL. Link
// headers take precedence over links inside the document. A missing self
// link falls back to feedURL; a missing hub falls back to the default hub.
func (r *Resolver) Resolve(ctx context.Context, feedURL rdf.IRI) (Topic, error) {
	ctx, span := tracer.Start(ctx, "feed.Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("feed.url", feedURL.String()))

	topic, err := r.discover(ctx, feedURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Topic{}, err
	}
	span.SetAttributes(attribute.String("feed.hub", topic.Hub.String()))
	return topic, nil
}

func (r *Resolver) discover(ctx context.Context, feedURL rdf.IRI) (Topic, error) {
	if r.localBase != "" && strings.HasPrefix(feedURL.String(), r.localBase) {
		if r.defaultHub.IsZero() {
			return Topic{}, fmt.Errorf("%w: local feed %s needs a default hub", ErrNoHub, feedURL)
		}
		return Topic{Hub: r.defaultHub, Self: feedURL}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL.String(), nil)
	if err != nil {
		return Topic{}, fmt.Errorf("feed url: %w", err)
	}
	req.Header.Set("Accept", "application/atom+xml, application/rss+xml, application/xml;q=0.9, text/html;q=0.8, */*;q=0.5")
	resp, err := r.client.Do(req)
	if err != nil {
		return Topic{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Topic{}, fmt.Errorf("%w: %s returned %d", ErrFetch, feedURL, resp.StatusCode)
	}

	links := parseLinkHeaders(resp.Header.Values("Link"))
	if links.hub == "" || links.self == "" {
		doc, err := scanDocumentLinks(io.LimitReader(resp.Body, r.maxBodyBytes))
		if err != nil {
			r.logger.DebugContext(ctx, "feed document not scannable",
				"feed", feedURL.String(),
				"error", err,
			)
		}
		links = links.fill(doc)
	}

	topic := Topic{Self: feedURL, Hub: r.defaultHub}
	if links.self != "" {
		self, err := resolveRef(feedURL, links.self)
		if err != nil {
			return Topic{}, fmt.Errorf("self link: %w", err)
		}
		topic.Self = self
	}
	if links.hub != "" {
		hub, err := resolveRef(feedURL, links.hub)
		if err != nil {
			return Topic{}, fmt.Errorf("hub link: %w", err)
		}
		topic.Hub = hub
	}
	if topic.Hub.IsZero() {
		return Topic{}, fmt.Errorf("%w: %s", ErrNoHub, feedURL)
	}
	return topic, nil
}

type discovered struct {
	hub  string
	self string
}

func (d discovered) fill(other discovered) discovered {
	if d.hub == "" {
		d.hub = other.hub
	}
	if d.self == "" {
		d.self = other.self
	}
	return d
}

// parseLinkHeaders reads RFC 8288 Link header values, e.g.
// `<https://hub.example/>; rel="hub", <https://x/feed>; rel=self`.
func parseLinkHeaders(values []string) discovered {
	var d discovered
	for _, value := range values {
		for _, link := range strings.Split(value, ",") {
			link = strings.TrimSpace(link)
			start := strings.Index(link, "<")
			end := strings.Index(link, ">")
			if start != 0 || end < 0 {
				continue
			}
			target := link[1:end]
			for _, param := range strings.Split(link[end+1:], ";") {
				key, val, ok := strings.Cut(strings.TrimSpace(param), "=")
				if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
					continue
				}
				d = d.fill(relTarget(strings.Trim(strings.TrimSpace(val), `"`), target))
			}
		}
	}
	return d
}

// scanDocumentLinks walks an Atom, RSS or HTML document for link elements
// carrying rel="hub" or rel="self". Only the first of each is kept.
func scanDocumentLinks(body io.Reader) (discovered, error) {
	var d discovered
	dec := xml.NewDecoder(body)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		if err != nil {
			return d, err
		}
		el, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(el.Name.Local, "link") {
			continue
		}
		var rel, href string
		for _, a := range el.Attr {
			switch strings.ToLower(a.Name.Local) {
			case "rel":
				rel = a.Value
			case "href":
				href = a.Value
			}
		}
		if href == "" {
			continue
		}
		d = d.fill(relTarget(rel, href))
		if d.hub != "" && d.self != "" {
			return d, nil
		}
	}
}

func relTarget(rel, target string) discovered {
	var d discovered
	for _, r := range strings.Fields(strings.ToLower(rel)) {
		switch r {
		case "hub":
			d.hub = target
		case "self":
			d.self = target
		}
	}
	return d
}

func resolveRef(base rdf.IRI, ref string) (rdf.IRI, error) {
	b, err := url.Parse(base.String())
	if err != nil {
		return "", err
	}
	u, err := b.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	return rdf.ParseIRI(u.String())
}
