//go:build integration

package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"pushgraph/internal/user/cache"
	"pushgraph/internal/user/models"
	"pushgraph/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *cache.RedisCache
	ctx   context.Context
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = cache.NewRedis(s.redis.Client, "test:users")
	s.ctx = context.Background()
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisCacheSuite) TestMissThenHit() {
	_, ok, err := s.cache.Get(s.ctx, "http://x/u1")
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.cache.Put(s.ctx, &models.User{URI: "http://x/u1", Name: "alice"}))
	got, ok, err := s.cache.Get(s.ctx, "http://x/u1")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("alice", got.Name)
}

func (s *RedisCacheSuite) TestSharedBetweenInstances() {
	other := cache.NewRedis(s.redis.Client, "test:users")
	s.Require().NoError(s.cache.Put(s.ctx, &models.User{URI: "http://x/u2", Name: "bob"}))

	got, ok, err := other.Get(s.ctx, "http://x/u2")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("bob", got.Name)
}
