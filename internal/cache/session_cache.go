package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"vibeform/internal/fill"
)

// ErrDispatched is returned when a submission was already claimed for a session.
var ErrDispatched = errors.New("submission already dispatched")

// SessionCache stores in-progress fill sessions
type SessionCache interface {
	Set(ctx context.Context, session *fill.Session) error
	Get(ctx context.Context, id string) (*fill.Session, error)
	Delete(ctx context.Context, id string) error
	// ClaimSubmission marks the session as dispatched. Only the first caller wins.
	ClaimSubmission(ctx context.Context, id string) error
	ReleaseSubmission(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return "fill:" + id
}

func (c *sessionCache) dispatchKey(id string) string {
	return "fill:" + id + ":dispatched"
}

func (c *sessionCache) Set(ctx context.Context, session *fill.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*fill.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session fill.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id), c.dispatchKey(id)).Err()
}

func (c *sessionCache) ClaimSubmission(ctx context.Context, id string) error {
	ok, err := c.client.SetNX(ctx, c.dispatchKey(id), time.Now().Unix(), c.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDispatched
	}
	return nil
}

func (c *sessionCache) ReleaseSubmission(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.dispatchKey(id)).Err()
}
