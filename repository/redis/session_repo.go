package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/subsidyhub/backend/domain"
	"github.com/subsidyhub/backend/repository"
)

const keyPrefix = "session:"

type sessionRepository struct {
	client     *redislib.Client
	defaultTTL time.Duration
}

// NewSessionRepository stores browser sessions in Redis, keyed by the
// opaque cookie token. Expiry is enforced by Redis itself via key TTLs.
func NewSessionRepository(client *redislib.Client, defaultTTL time.Duration) repository.SessionRepository {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &sessionRepository{client: client, defaultTTL: defaultTTL}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.defaultTTL)
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+session.ID, payload, r.ttlFor(session)).Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}

func (r *sessionRepository) ttlFor(session *domain.Session) time.Duration {
	if ttl := time.Until(session.ExpiresAt); ttl > 0 {
		return ttl
	}
	return r.defaultTTL
}
