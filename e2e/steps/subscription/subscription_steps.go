package subscription

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cucumber/godog"

	"pushgraph/pkg/rdf"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponse() map[string]any
	UserURI(id string) string
	RemoteFeedURL() string
	SetHubStatus(status int)
	HubRequests() []url.Values
	WriteTriples(ctx context.Context, statements rdf.Statements) error
}

// RegisterSteps registers subscription and notification steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &subscriptionSteps{tc: tc}

	ctx.Step(`^the hub accepts subscriptions$`, steps.hubAccepts)
	ctx.Step(`^the hub rejects subscriptions$`, steps.hubRejects)
	ctx.Step(`^"([^"]*)" is a person whose account is "([^"]*)"$`, steps.personWithAccount)
	ctx.Step(`^a notification "([^"]*)" saying "([^"]*)" targets "([^"]*)"$`, steps.notificationTargets)

	ctx.Step(`^I subscribe to resource "([^"]*)"$`, steps.subscribeToResource)
	ctx.Step(`^I subscribe to resource "([^"]*)" via feed "([^"]*)"$`, steps.subscribeViaFeed)
	ctx.Step(`^I subscribe to resource "([^"]*)" via the remote feed$`, steps.subscribeViaRemoteFeed)
	ctx.Step(`^I subscribe "([^"]*)" to resource "([^"]*)"$`, steps.subscribeOther)
	ctx.Step(`^I list my subscriptions$`, steps.listSubscriptions)
	ctx.Step(`^I list my subscribed resources$`, steps.listResources)
	ctx.Step(`^I list the subscriptions of "([^"]*)"$`, steps.listSubscriptionsOf)
	ctx.Step(`^I list my notifications$`, steps.listNotifications)

	ctx.Step(`^the hub should have received (\d+) subscribe requests?$`, steps.hubReceived)
	ctx.Step(`^the last hub request should carry topic "([^"]*)"$`, steps.lastHubTopic)
	ctx.Step(`^the last hub request should carry the remote feed topic$`, steps.lastHubRemoteTopic)
	ctx.Step(`^the response should list (\d+) (feeds|resources)$`, steps.responseListCount)
	ctx.Step(`^the resources should be "([^"]*)"$`, steps.resourcesShouldBe)
	ctx.Step(`^the notifications should be "([^"]*)"$`, steps.notificationsShouldBe)
}

type subscriptionSteps struct {
	tc TestContext
}

func (s *subscriptionSteps) hubAccepts(_ context.Context) error {
	s.tc.SetHubStatus(http.StatusAccepted)
	return nil
}

func (s *subscriptionSteps) hubRejects(_ context.Context) error {
	s.tc.SetHubStatus(http.StatusBadRequest)
	return nil
}

func (s *subscriptionSteps) personWithAccount(ctx context.Context, person, accountID string) error {
	return s.tc.WriteTriples(ctx, rdf.Statements{}.
		Add(rdf.IRI(person), rdf.RDFType, rdf.URI(rdf.FOAFPerson)).
		Add(rdf.IRI(person), rdf.FOAFAccount, rdf.URI(rdf.IRI(s.tc.UserURI(accountID)))))
}

func (s *subscriptionSteps) notificationTargets(ctx context.Context, notification, content, userID string) error {
	return s.tc.WriteTriples(ctx, rdf.Statements{}.
		Add(rdf.IRI(notification), rdf.DSSNNotify, rdf.URI(rdf.IRI(s.tc.UserURI(userID)))).
		Add(rdf.IRI(notification), rdf.SIOCContent, rdf.Literal(content)))
}

func (s *subscriptionSteps) subscribeToResource(_ context.Context, resource string) error {
	return s.tc.POST("/subscriptions", map[string]string{"resource": resource})
}

func (s *subscriptionSteps) subscribeViaFeed(_ context.Context, resource, feed string) error {
	return s.tc.POST("/subscriptions", map[string]string{"resource": resource, "feed": feed})
}

func (s *subscriptionSteps) subscribeViaRemoteFeed(_ context.Context, resource string) error {
	return s.tc.POST("/subscriptions", map[string]string{"resource": resource, "feed": s.tc.RemoteFeedURL()})
}

func (s *subscriptionSteps) subscribeOther(_ context.Context, subscriber, resource string) error {
	return s.tc.POST("/subscriptions", map[string]string{"subscriber": subscriber, "resource": resource})
}

func (s *subscriptionSteps) listSubscriptions(_ context.Context) error {
	return s.tc.GET("/subscriptions")
}

func (s *subscriptionSteps) listResources(_ context.Context) error {
	return s.tc.GET("/subscriptions/resources")
}

func (s *subscriptionSteps) listSubscriptionsOf(_ context.Context, userID string) error {
	return s.tc.GET("/subscriptions?user=" + url.QueryEscape(s.tc.UserURI(userID)))
}

func (s *subscriptionSteps) listNotifications(_ context.Context) error {
	return s.tc.GET("/notifications")
}

func (s *subscriptionSteps) hubReceived(_ context.Context, n int) error {
	if got := len(s.tc.HubRequests()); got != n {
		return fmt.Errorf("expected %d hub requests, got %d", n, got)
	}
	return nil
}

func (s *subscriptionSteps) lastHubTopic(_ context.Context, topic string) error {
	requests := s.tc.HubRequests()
	if len(requests) == 0 {
		return fmt.Errorf("hub received no requests")
	}
	last := requests[len(requests)-1]
	if last.Get("hub.mode") != "subscribe" {
		return fmt.Errorf("expected hub.mode=subscribe, got %q", last.Get("hub.mode"))
	}
	if got := last.Get("hub.topic"); got != topic {
		return fmt.Errorf("expected topic %q, got %q", topic, got)
	}
	return nil
}

func (s *subscriptionSteps) lastHubRemoteTopic(ctx context.Context) error {
	return s.lastHubTopic(ctx, s.tc.RemoteFeedURL())
}

func (s *subscriptionSteps) list(key string) ([]string, error) {
	raw, ok := s.tc.GetResponse()[key].([]any)
	if !ok {
		return nil, fmt.Errorf("response has no %s list: %v", key, s.tc.GetResponse())
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, fmt.Sprint(v))
	}
	return out, nil
}

func (s *subscriptionSteps) responseListCount(_ context.Context, n int, key string) error {
	items, err := s.list(key)
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d %s, got %v", n, key, items)
	}
	return nil
}

func (s *subscriptionSteps) resourcesShouldBe(_ context.Context, want string) error {
	items, err := s.list("resources")
	if err != nil {
		return err
	}
	if got := strings.Join(items, ","); got != want {
		return fmt.Errorf("expected resources %q, got %q", want, got)
	}
	return nil
}

func (s *subscriptionSteps) notificationsShouldBe(_ context.Context, want string) error {
	var got []string
	for uri := range s.tc.GetResponse() {
		got = append(got, uri)
	}
	if len(got) != 1 || got[0] != want {
		return fmt.Errorf("expected notifications [%s], got %v", want, got)
	}
	return nil
}
