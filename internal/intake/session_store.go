package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrSessionNotFound indicates the session ID is unknown or has expired.
var ErrSessionNotFound = errors.New("intake: session not found")

const sessionTTL = 24 * time.Hour

// SessionStore keeps sessions in Redis so any API instance can continue a
// conversation. Sessions expire a day after their last write.
type SessionStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewSessionStore wires a session store around a Redis client.
func NewSessionStore(redis *redis.Client, tracer trace.Tracer) *SessionStore {
	if redis == nil {
		panic("intake: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("carebridge.internal.intake.sessions")
	}
	return &SessionStore{
		redis:  redis,
		tracer: tracer,
	}
}

// Save persists the session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	ctx, span := s.tracer.Start(ctx, "intake.save_session")
	defer span.End()

	data, err := json.Marshal(session)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("intake: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("intake: failed to persist session: %w", err)
	}
	return nil
}

// Load retrieves a session by ID.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "intake.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		span.RecordError(err)
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("intake: failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("intake: failed to decode session: %w", err)
	}
	return &session, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "intake.delete_session")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("intake: failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("intake_session:%s", id)
}
