// Package storetest is a behavioral suite every graph store backend must pass.
package storetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"pushgraph/internal/graph"
	"pushgraph/pkg/rdf"
)

const (
	TestGraph  rdf.IRI = "http://example.org/graph/test"
	OtherGraph rdf.IRI = "http://example.org/graph/other"
)

// ConformanceSuite runs against the store returned by NewStore, which is
// called once per test and must return an empty store.
type ConformanceSuite struct {
	suite.Suite
	NewStore func() graph.Store
	store    graph.Store
	ctx      context.Context
}

func (s *ConformanceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.NewStore()
}

func (s *ConformanceSuite) write(g rdf.IRI, st rdf.Statements) {
	s.Require().NoError(s.store.Write(s.ctx, g, st))
}

func values(rows []graph.Binding, name string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		v, _ := r.Value(name)
		out = append(out, v)
	}
	return out
}

func (s *ConformanceSuite) TestSelectSingleHop() {
	s.write(TestGraph, rdf.Statements{}.
		Add("http://x/n1", rdf.DSSNNotify, rdf.URI("http://x/u1")).
		Add("http://x/n2", rdf.DSSNNotify, rdf.URI("http://x/u2")))
	s.write(TestGraph, rdf.Statements{}.
		Add("http://x/n3", rdf.DSSNNotify, rdf.URI("http://x/u1")))

	rows, err := s.store.Select(s.ctx, TestGraph, graph.Select("uri").
		Where(graph.V("uri"), graph.U(rdf.DSSNNotify), graph.U("http://x/u1")))
	s.Require().NoError(err)
	s.Equal([]string{"http://x/n1", "http://x/n3"}, values(rows, "uri"))
	s.Equal(rdf.KindURI, rows[0]["uri"].Kind)
}

func (s *ConformanceSuite) TestSelectLiteralObject() {
	s.write(TestGraph, rdf.Statements{}.
		Add("http://x/u1", rdf.FOAFAccountName, rdf.Literal("alice")).
		Add("http://x/u2", rdf.FOAFAccountName, rdf.URI("http://x/alice")))

	rows, err := s.store.Select(s.ctx, TestGraph, graph.Select("name").
		Where(graph.U("http://x/u1"), graph.U(rdf.FOAFAccountName), graph.V("name")))
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(rdf.Literal("alice"), rows[0]["name"])

	s.Run("literal constant does not match an IRI with the same text", func() {
		rows, err := s.store.Select(s.ctx, TestGraph, graph.Select("u").
			Where(graph.V("u"), graph.U(rdf.FOAFAccountName), graph.L("http://x/alice")))
		s.Require().NoError(err)
		s.Empty(rows)
	})
}

func (s *ConformanceSuite) TestMultiHopJoin() {
	s.write(TestGraph, rdf.Statements{}.
		Add("http://x/u1", rdf.DSSNSubscribedTo, rdf.URI("http://x/sub1")).
		Add("http://x/u1", rdf.DSSNSubscribedTo, rdf.URI("http://x/sub2")).
		Add("http://x/sub1", rdf.DSSNSubscriptionTopic, rdf.URI("http://x/f1")).
		Add("http://x/sub2", rdf.DSSNSubscriptionTopic, rdf.URI("http://x/f1")).
		Add("http://x/r1", rdf.DSSNActivityFeed, rdf.URI("http://x/f1")))

	base := graph.Select("resUri").
		Where(graph.U("http://x/u1"), graph.U(rdf.DSSNSubscribedTo), graph.V("subUri")).
		Where(graph.V("subUri"), graph.U(rdf.DSSNSubscriptionTopic), graph.V("feedUri")).
		Where(graph.V("resUri"), graph.U(rdf.DSSNActivityFeed), graph.V("feedUri"))

	s.Run("without distinct every path is a row", func() {
		rows, err := s.store.Select(s.ctx, TestGraph, base)
		s.Require().NoError(err)
		s.Equal([]string{"http://x/r1", "http://x/r1"}, values(rows, "resUri"))
	})

	s.Run("distinct collapses duplicate rows", func() {
		rows, err := s.store.Select(s.ctx, TestGraph, base.WithDistinct())
		s.Require().NoError(err)
		s.Equal([]string{"http://x/r1"}, values(rows, "resUri"))
	})
}

func (s *ConformanceSuite) TestObjectVariableReusedAsSubject() {
	s.write(TestGraph, rdf.Statements{}.
		Add("http://x/p1", rdf.FOAFAccount, rdf.URI("http://x/a1")).
		Add("http://x/p2", rdf.FOAFAccount, rdf.Literal("http://x/a2")).
		Add("http://x/a1", rdf.FOAFAccountName, rdf.Literal("alice")).
		Add("http://x/a2", rdf.FOAFAccountName, rdf.Literal("bob")))

	rows, err := s.store.Select(s.ctx, TestGraph, graph.Select("p", "name").
		Where(graph.V("p"), graph.U(rdf.FOAFAccount), graph.V("a")).
		Where(graph.V("a"), graph.U(rdf.FOAFAccountName), graph.V("name")))
	s.Require().NoError(err)
	s.Require().Len(rows, 1, "a literal object must not join with a subject IRI")
	s.Equal("http://x/p1", rows[0]["p"].Value)
	s.Equal("alice", rows[0]["name"].Value)
}

func (s *ConformanceSuite) TestLimit() {
	st := rdf.Statements{}
	st.Add("http://x/u1", rdf.DSSNSubscribedTo, rdf.URI("http://x/s1"))
	st.Add("http://x/u1", rdf.DSSNSubscribedTo, rdf.URI("http://x/s2"))
	st.Add("http://x/u1", rdf.DSSNSubscribedTo, rdf.URI("http://x/s3"))
	s.write(TestGraph, st)

	rows, err := s.store.Select(s.ctx, TestGraph, graph.Select("s").
		Where(graph.U("http://x/u1"), graph.U(rdf.DSSNSubscribedTo), graph.V("s")).
		WithLimit(1))
	s.Require().NoError(err)
	s.Equal([]string{"http://x/s1"}, values(rows, "s"))
}

func (s *ConformanceSuite) TestAsk() {
	s.write(TestGraph, rdf.Statements{}.
		Add("http://x/u1", rdf.DSSNSubscribedTo, rdf.URI("http://x/sub1")).
		Add("http://x/sub1", rdf.DSSNSubscriptionTopic, rdf.URI("http://x/f1")))

	ask := func(topic rdf.IRI) bool {
		answer, err := s.store.Ask(s.ctx, TestGraph, graph.Ask().
			Where(graph.U("http://x/u1"), graph.U(rdf.DSSNSubscribedTo), graph.V("sub")).
			Where(graph.V("sub"), graph.U(rdf.DSSNSubscriptionTopic), graph.U(topic)))
		s.Require().NoError(err)
		ok, err := answer.Truth()
		s.Require().NoError(err)
		return ok
	}
	s.True(ask("http://x/f1"))
	s.False(ask("http://x/f2"))
}

func (s *ConformanceSuite) TestWriteIsIdempotentAndGraphScoped() {
	st := rdf.Statements{}.Add("http://x/r1", rdf.DSSNActivityFeed, rdf.URI("http://x/f1"))
	s.write(TestGraph, st)
	s.write(TestGraph, st)
	s.write(OtherGraph, rdf.Statements{}.Add("http://x/r2", rdf.DSSNActivityFeed, rdf.URI("http://x/f1")))

	rows, err := s.store.Select(s.ctx, TestGraph, graph.Select("r").
		Where(graph.V("r"), graph.U(rdf.DSSNActivityFeed), graph.U("http://x/f1")))
	s.Require().NoError(err)
	s.Equal([]string{"http://x/r1"}, values(rows, "r"))
}

func (s *ConformanceSuite) TestEmptyGraph() {
	rows, err := s.store.Select(s.ctx, TestGraph, graph.Select("s").
		Where(graph.V("s"), graph.V("p"), graph.V("o")))
	s.Require().NoError(err)
	s.Empty(rows)

	answer, err := s.store.Ask(s.ctx, TestGraph, graph.Ask().
		Where(graph.V("s"), graph.V("p"), graph.V("o")))
	s.Require().NoError(err)
	ok, err := answer.Truth()
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ConformanceSuite) TestRejectsInvalidQuery() {
	_, err := s.store.Select(s.ctx, TestGraph, graph.Select("x").
		Where(graph.V("s"), graph.U(rdf.RDFType), graph.V("o")))
	s.Error(err, "projected variable must be bound")

	_, err = s.store.Select(s.ctx, TestGraph, graph.Select("o").
		Where(graph.L("literal subject"), graph.U(rdf.RDFType), graph.V("o")))
	s.Error(err)
}
