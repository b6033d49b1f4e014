package analytics

import (
	"context"

	"github.com/bastiangx/shopsearch/pkg/clients"
	"github.com/bastiangx/shopsearch/pkg/config"
	"github.com/bastiangx/shopsearch/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// RedisProvider reads recent queries from a list and trending queries from a
// sorted set scored by submit count. Both are maintained elsewhere; the
// provider never writes.
type RedisProvider struct {
	client      *clients.RedisClient
	recentKey   string
	trendingKey string
	limit       int64
}

// NewRedisProvider returns a provider over client using the keys in cfg.
func NewRedisProvider(client *clients.RedisClient, cfg config.RedisConfig) *RedisProvider {
	limit := int64(cfg.Limit)
	if limit <= 0 {
		limit = 5
	}
	return &RedisProvider{
		client:      client,
		recentKey:   cfg.RecentKey,
		trendingKey: cfg.TrendingKey,
		limit:       limit,
	}
}

// Recent returns the newest queries first.
func (p *RedisProvider) Recent(ctx context.Context) ([]string, error) {
	items, err := p.client.Client.LRange(ctx, p.recentKey, 0, p.limit-1).Result()
	if err != nil && err != r.Nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return items, nil
}

// Trending returns the most submitted queries first.
func (p *RedisProvider) Trending(ctx context.Context) ([]string, error) {
	items, err := p.client.Client.ZRevRange(ctx, p.trendingKey, 0, p.limit-1).Result()
	if err != nil && err != r.Nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return items, nil
}
