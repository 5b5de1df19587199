package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"doctor-directory/internal/delivery/dto"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	// HomeViewKey holds the JSON encoded home page context.
	HomeViewKey = "home:view:v1"

	redisOpTimeout  = 2 * time.Second
	homeLoadTimeout = 30 * time.Second
)

// HomeLoader computes the home view from the database.
type HomeLoader func(ctx context.Context) (*dto.HomeView, error)

// HomeCache fronts the home view with Redis. A nil Redis client disables
// caching; loads then always hit the database.
type HomeCache interface {
	GetOrLoad(ctx context.Context, load HomeLoader) (*dto.HomeView, error)
	Invalidate(ctx context.Context) error
}

type homeCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
	group  singleflight.Group
}

func NewHomeCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) HomeCache {
	return &homeCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

// GetOrLoad returns the cached view, or loads and stores it. Concurrent
// misses share one load. Redis errors are logged and bypassed.
//
// The shared load runs detached from any single caller's context so one
// disconnecting client does not fail the others waiting on it. Each caller
// still returns as soon as its own context is done.
func (c *homeCache) GetOrLoad(ctx context.Context, load HomeLoader) (*dto.HomeView, error) {
	if c.client != nil {
		if view, ok := c.get(ctx); ok {
			return view, nil
		}
	}

	ch := c.group.DoChan(HomeViewKey, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), homeLoadTimeout)
		defer cancel()

		if c.client != nil {
			if view, ok := c.get(loadCtx); ok {
				return view, nil
			}
		}
		view, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if c.client != nil {
			c.set(loadCtx, view)
		}
		return view, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dto.HomeView), nil
	}
}

func (c *homeCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisOpTimeout)
	defer cancel()

	if err := c.client.Del(ctx, HomeViewKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate home cache: %+v", err)
		return err
	}
	return nil
}

func (c *homeCache) get(ctx context.Context) (*dto.HomeView, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, HomeViewKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read home cache: %+v", err)
		}
		return nil, false
	}

	var view dto.HomeView
	if err := json.Unmarshal(raw, &view); err != nil {
		c.log.Warnf("Failed to decode home cache: %+v", err)
		return nil, false
	}
	return &view, true
}

func (c *homeCache) set(ctx context.Context, view *dto.HomeView) {
	raw, err := json.Marshal(view)
	if err != nil {
		c.log.Warnf("Failed to encode home cache: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), redisOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, HomeViewKey, raw, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write home cache: %+v", err)
	}
}
