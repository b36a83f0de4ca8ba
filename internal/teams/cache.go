package teams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultStatsTTL is how long cached team stats live
const DefaultStatsTTL = 6 * time.Hour

// CachedLookup is a read-through redis cache in front of another Lookup.
// Redis failures are logged and bypassed; they never fail a lookup.
type CachedLookup struct {
	client *redis.Client
	next   Lookup
	ttl    time.Duration
	log    logrus.FieldLogger
}

// NewCachedLookup wraps next with a redis cache
func NewCachedLookup(client *redis.Client, next Lookup, ttl time.Duration, log logrus.FieldLogger) *CachedLookup {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedLookup{
		client: client,
		next:   next,
		ttl:    ttl,
		log:    log,
	}
}

// Lookup implements Lookup
func (c *CachedLookup) Lookup(ctx context.Context, name string) (*models.TeamStats, error) {
	key := statsKey(name)

	stats, err := c.read(ctx, key)
	switch {
	case err == nil:
		return stats, nil
	case !errors.Is(err, redis.Nil):
		c.log.WithError(err).WithField("key", key).Debug("team cache read failed")
	}

	stats, err = c.next.Lookup(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := c.write(ctx, key, stats); err != nil {
		c.log.WithError(err).WithField("key", key).Debug("team cache write failed")
	}
	return stats, nil
}

func (c *CachedLookup) read(ctx context.Context, key string) (*models.TeamStats, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var stats models.TeamStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshaling team stats: %w", err)
	}
	return &stats, nil
}

func (c *CachedLookup) write(ctx context.Context, key string, stats *models.TeamStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshaling team stats: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func statsKey(name string) string {
	return fmt.Sprintf("team:%s:stats", normalize(name))
}
