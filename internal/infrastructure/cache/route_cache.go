// Package cache provides a Redis-backed cache in front of the route catalog.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
	"pilot-career-service/pkg/logger"
	"pilot-career-service/pkg/metrics"
)

// DefaultRouteTTL is used when Config.RouteTTL is unset
const DefaultRouteTTL = 10 * time.Minute

// KeyRoutes prefixes cached route lookups
const KeyRoutes = "career:routes:"

// Lookup results recorded in metrics
const (
	resultHit      = "hit"
	resultMiss     = "miss"
	resultDisabled = "disabled"
)

// Config contains cache configuration
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RouteTTL      time.Duration

	DialTimeout time.Duration
}

// CachedRouteCatalog caches FindRoutes results of the wrapped catalog. The
// first Redis error disables the cache for the lifetime of the process.
type CachedRouteCatalog struct {
	next    repository.RouteCatalog
	client  *redis.Client
	ttl     time.Duration
	logger  logger.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	disabled bool
}

// NewCachedRouteCatalog connects to Redis. An unreachable Redis yields a
// catalog that passes every call straight through.
func NewCachedRouteCatalog(next repository.RouteCatalog, cfg Config, log logger.Logger, m *metrics.Metrics) *CachedRouteCatalog {
	if cfg.RouteTTL <= 0 {
		cfg.RouteTTL = DefaultRouteTTL
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	c := &CachedRouteCatalog{
		next:    next,
		ttl:     cfg.RouteTTL,
		logger:  log.With("component", "route_cache"),
		metrics: m,
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		c.logger.Warn("Redis unavailable, route cache disabled", "addr", cfg.RedisAddr, "error", err)
		client.Close()
		c.disabled = true
		return c
	}

	c.client = client
	c.logger.Info("Route cache initialized", "addr", cfg.RedisAddr, "ttl", cfg.RouteTTL.String())
	return c
}

// Close closes the Redis connection
func (c *CachedRouteCatalog) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// IsAvailable returns true if the cache is operational
func (c *CachedRouteCatalog) IsAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.disabled && c.client != nil
}

// FindRoutes serves query from Redis when possible
func (c *CachedRouteCatalog) FindRoutes(ctx context.Context, query entity.RouteQuery) ([]entity.Route, error) {
	if !c.IsAvailable() {
		c.count(resultDisabled)
		return c.next.FindRoutes(ctx, query)
	}

	key := RouteKey(query)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var routes []entity.Route
		if jsonErr := json.Unmarshal(data, &routes); jsonErr == nil {
			c.count(resultHit)
			return routes, nil
		}
		c.logger.Warn("Dropping undecodable cache entry", "key", key)
		c.client.Del(ctx, key)
	} else {
		c.handleError(err, "get")
	}
	c.count(resultMiss)

	routes, err := c.next.FindRoutes(ctx, query)
	if err != nil {
		return nil, err
	}

	if c.IsAvailable() {
		payload, err := json.Marshal(routes)
		if err != nil {
			return routes, nil
		}
		c.handleError(c.client.Set(ctx, key, payload, c.ttl).Err(), "set")
	}
	return routes, nil
}

// HasAirport is never cached
func (c *CachedRouteCatalog) HasAirport(ctx context.Context, iata string) (bool, error) {
	return c.next.HasAirport(ctx, iata)
}

// Invalidate removes every cached route lookup
func (c *CachedRouteCatalog) Invalidate(ctx context.Context) error {
	if !c.IsAvailable() {
		return nil
	}
	iter := c.client.Scan(ctx, 0, KeyRoutes+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.handleError(err, "invalidate")
			return err
		}
	}
	if err := iter.Err(); err != nil {
		c.handleError(err, "invalidate")
		return err
	}
	return nil
}

// RouteKey is the Redis key for a route query
func RouteKey(q entity.RouteQuery) string {
	return fmt.Sprintf("%s%s:%s:%s:%s:%d:%d", KeyRoutes, q.Departure, q.Arrival, q.Airline, q.Haul, q.Limit, q.Offset)
}

func (c *CachedRouteCatalog) handleError(err error, operation string) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}
	c.logger.Warn("Disabling route cache after Redis error", "operation", operation, "error", err)
	c.mu.Lock()
	c.disabled = true
	c.mu.Unlock()
}

func (c *CachedRouteCatalog) count(result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
