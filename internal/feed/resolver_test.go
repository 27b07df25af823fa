package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pushgraph/pkg/rdf"
)

const atomWithLinks = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>activities</title>
  <link rel="alternate" href="/html"/>
  <link rel="hub" href="https://hub.example/"/>
  <link rel="self" href="/feeds/1"/>
  <entry><title>one</title></entry>
</feed>`

const htmlWithLinks = `<!DOCTYPE html>
<html><head>
<meta charset="utf-8">
<link rel="stylesheet" href="/site.css">
<link rel="self hub" href="https://both.example/">
</head><body>&nbsp;</body></html>`

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("link headers win over document links", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Link", `<https://header-hub.example/>; rel="hub"`)
			w.Header().Add("Link", `<https://canonical.example/feed>; rel=self`)
			_, _ = w.Write([]byte(atomWithLinks))
		})
		topic, err := NewResolver().Resolve(ctx, rdf.IRI(srv.URL+"/feed"))
		require.NoError(t, err)
		assert.Equal(t, rdf.IRI("https://header-hub.example/"), topic.Hub)
		assert.Equal(t, rdf.IRI("https://canonical.example/feed"), topic.Self)
	})

	t.Run("atom document links resolve relative to the feed", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atomWithLinks))
		})
		topic, err := NewResolver().Resolve(ctx, rdf.IRI(srv.URL+"/feed"))
		require.NoError(t, err)
		assert.Equal(t, rdf.IRI("https://hub.example/"), topic.Hub)
		assert.Equal(t, rdf.IRI(srv.URL+"/feeds/1"), topic.Self)
	})

	t.Run("html documents with multi-valued rel", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(htmlWithLinks))
		})
		topic, err := NewResolver().Resolve(ctx, rdf.IRI(srv.URL))
		require.NoError(t, err)
		assert.Equal(t, rdf.IRI("https://both.example/"), topic.Hub)
		assert.Equal(t, rdf.IRI("https://both.example/"), topic.Self)
	})

	t.Run("default hub and feed url as self", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<rss version="2.0"><channel><title>x</title></channel></rss>`))
		})
		feedURL := rdf.IRI(srv.URL + "/rss")
		topic, err := NewResolver(WithDefaultHub("https://default-hub.example/")).Resolve(ctx, feedURL)
		require.NoError(t, err)
		assert.Equal(t, rdf.IRI("https://default-hub.example/"), topic.Hub)
		assert.Equal(t, feedURL, topic.Self)
	})

	t.Run("no hub anywhere", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<feed/>`))
		})
		_, err := NewResolver().Resolve(ctx, rdf.IRI(srv.URL))
		require.ErrorIs(t, err, ErrNoHub)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := NewResolver().Resolve(ctx, rdf.IRI(srv.URL))
		require.ErrorIs(t, err, ErrFetch)
	})

	t.Run("malformed feed url is not a fetch failure", func(t *testing.T) {
		_, err := NewResolver().Resolve(ctx, rdf.IRI("http://bad host/feed"))
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrFetch)
	})

	t.Run("slow feed times out", func(t *testing.T) {
		srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
		_, err := NewResolver(WithTimeout(50*time.Millisecond)).Resolve(ctx, rdf.IRI(srv.URL))
		require.ErrorIs(t, err, ErrFetch)
	})
}

func TestParseLinkHeaders(t *testing.T) {
	d := parseLinkHeaders([]string{
		`<https://a.example/>; rel="alternate", <https://hub.example/>; rel="hub"`,
		`garbage, <https://self.example/>;rel="self"`,
	})
	assert.Equal(t, "https://hub.example/", d.hub)
	assert.Equal(t, "https://self.example/", d.self)
}

func TestDeriver(t *testing.T) {
	minter, err := rdf.NewMinter("http://xodx.example/")
	require.NoError(t, err)
	got := NewDeriver(minter).DeriveFeedURI("http://xodx.example/?c=resource&id=1")

	u, err := url.Parse(got.String())
	require.NoError(t, err)
	assert.Equal(t, "feed", u.Query().Get("c"))
	assert.Equal(t, "getFeed", u.Query().Get("a"))
	assert.Equal(t, "http://xodx.example/?c=resource&id=1", u.Query().Get("uri"))
}

func TestResolveLocalFeed(t *testing.T) {
	ctx := context.Background()
	local := rdf.IRI("http://xodx.example/?c=feed&a=getFeed&uri=http%3A%2F%2Fxodx.example%2Fr1")

	topic, err := NewResolver(
		WithLocalBase("http://xodx.example/"),
		WithDefaultHub("https://hub.example/"),
		WithHTTPClient(&http.Client{Transport: failingTransport{}}),
	).Resolve(ctx, local)
	require.NoError(t, err)
	assert.Equal(t, Topic{Hub: "https://hub.example/", Self: local}, topic)

	_, err = NewResolver(WithLocalBase("http://xodx.example/")).Resolve(ctx, local)
	require.ErrorIs(t, err, ErrNoHub)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	panic("local feeds must not be fetched")
}
