package infra_session_cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/kinoswipe/internal/model"
)

// Driver keeps sessions as JSON under <key>:<token>. Every save renews the TTL.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Save(ctx context.Context, token string, sess model.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	return d.client.WithContext(ctx).Set(d.getFullKey(token), value, d.ttl).Err()
}

// Load returns the zero session for unknown or expired tokens.
func (d *Driver) Load(ctx context.Context, token string) (model.Session, error) {
	val, err := d.client.WithContext(ctx).Get(d.getFullKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return model.Session{}, nil
		}
		return model.Session{}, err
	}

	var sess model.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return model.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

func (d *Driver) Delete(ctx context.Context, token string) error {
	return d.client.WithContext(ctx).Del(d.getFullKey(token)).Err()
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
