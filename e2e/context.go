// Package e2e drives the fully wired server through HTTP with godog
// scenarios. A fake push hub stands in for the external broker.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"pushgraph/internal/app"
	"pushgraph/internal/platform/config"
	"pushgraph/pkg/rdf"
)

// TestContext holds the per-scenario server, hub and last response.
type TestContext struct {
	server    *httptest.Server
	hubServer *httptest.Server
	app       *app.App
	hub       *fakeHub
	cfg       config.Config
	minter    *rdf.Minter

	sessionUser  string
	lastStatus   int
	lastResponse map[string]any
}

// fakeHub accepts or rejects subscribe requests and records them. It also
// publishes a remote Atom feed at /feed that advertises itself as hub.
type fakeHub struct {
	mu       sync.Mutex
	status   int
	requests []url.Values
}

const remoteFeedPath = "/feed"

func (h *fakeHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.Path == remoteFeedPath {
		base := "http://" + r.Host
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>remote</title>
  <link rel="hub" href="%s/"/>
  <link rel="self" href="%s%s"/>
</feed>`, base, base, remoteFeedPath)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, r.PostForm)
	w.WriteHeader(h.status)
}

// Start boots a fresh in-memory server whose default hub is the fake hub.
func (tc *TestContext) Start(ctx context.Context) error {
	tc.hub = &fakeHub{status: http.StatusAccepted}
	tc.hubServer = httptest.NewServer(tc.hub)

	cfg := config.Default()
	cfg.Hub.DefaultHub = tc.hubServer.URL + "/"
	cfg.App.BaseURI = "http://pushgraph.test/"
	cfg.App.GraphURI = "http://pushgraph.test/"
	tc.cfg = cfg
	minter, err := rdf.NewMinter(cfg.App.BaseURI)
	if err != nil {
		tc.hubServer.Close()
		return err
	}
	tc.minter = minter

	a, err := app.New(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		tc.hubServer.Close()
		return fmt.Errorf("start app: %w", err)
	}
	tc.app = a
	tc.server = httptest.NewServer(a.Handler())
	tc.sessionUser = ""
	tc.lastStatus = 0
	tc.lastResponse = nil
	return nil
}

// Stop shuts the scenario's servers down.
func (tc *TestContext) Stop() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.hubServer != nil {
		tc.hubServer.Close()
	}
	if tc.app != nil {
		tc.app.Close()
	}
}

func (tc *TestContext) SetSessionUser(id string) {
	tc.sessionUser = id
}

// UserURI mints the account IRI the server derives for a session id.
func (tc *TestContext) UserURI(id string) string {
	return string(tc.minter.UserURI(id))
}

func (tc *TestContext) SetHubStatus(status int) {
	tc.hub.mu.Lock()
	defer tc.hub.mu.Unlock()
	tc.hub.status = status
}

// RemoteFeedURL is the Atom feed served next to the fake hub.
func (tc *TestContext) RemoteFeedURL() string {
	return tc.hubServer.URL + remoteFeedPath
}

// HubRequests returns the subscribe requests the hub received so far.
func (tc *TestContext) HubRequests() []url.Values {
	tc.hub.mu.Lock()
	defer tc.hub.mu.Unlock()
	return append([]url.Values(nil), tc.hub.requests...)
}

// WriteTriples stores statements the way an in-process producer would.
func (tc *TestContext) WriteTriples(ctx context.Context, statements rdf.Statements) error {
	return tc.app.Model().Write(ctx, statements)
}

func (tc *TestContext) POST(path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(raw))
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.sessionUser != "" {
		req.Header.Set(tc.cfg.Server.SessionHeader, tc.sessionUser)
	}
	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastResponse = nil
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tc.lastResponse); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetResponseField(field string) (any, error) {
	v, ok := tc.lastResponse[field]
	if !ok {
		return nil, fmt.Errorf("response has no field %q: %v", field, tc.lastResponse)
	}
	return v, nil
}

// GetResponse returns the decoded body of the last response.
func (tc *TestContext) GetResponse() map[string]any {
	return tc.lastResponse
}
