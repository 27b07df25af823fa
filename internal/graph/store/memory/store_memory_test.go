package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"pushgraph/internal/graph"
	"pushgraph/internal/graph/store/storetest"
)

func TestInMemoryStoreConformance(t *testing.T) {
	suite.Run(t, &storetest.ConformanceSuite{
		NewStore: func() graph.Store { return New() },
	})
}
