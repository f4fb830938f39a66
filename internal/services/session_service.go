package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lettingshub/app-tenancy/internal/config"
	"github.com/lettingshub/app-tenancy/internal/form"
	"github.com/lettingshub/app-tenancy/internal/models"
	"github.com/lettingshub/app-tenancy/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "form_session:"

// SessionService stores form sessions in Redis with a TTL. A session has a
// single writer, so no locking is done beyond the atomic get/set.
type SessionService struct {
	redis  *redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(redisClient *redisclient.Client, ttl time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// Global session service instance
var SessionServiceInstance *SessionService

// InitSessionService initializes the global session service instance
func InitSessionService() {
	logger := zap.L().Named("session_service")

	SessionServiceInstance = NewSessionService(config.Redis, config.AppConfig.SessionTTL, logger)

	logger.Info("session service initialized",
		zap.Duration("ttl", config.AppConfig.SessionTTL))
}

// Create stores a fresh session and returns it.
func (s *SessionService) Create(ctx context.Context) (*form.Session, error) {
	session := form.NewSession()
	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("form session created", zap.String("session_id", session.ID))
	return session, nil
}

// Get loads a session by id.
func (s *SessionService) Get(ctx context.Context, id string) (*form.Session, error) {
	data, err := s.redis.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session form.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	// Reading slides the expiry: a session stays alive while the applicant
	// is working through it. Best effort, a miss just leaves the old TTL.
	if err := s.redis.Expire(ctx, sessionKeyPrefix+id, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to refresh session TTL",
			zap.String("session_id", id), zap.Error(err))
	}

	return &session, nil
}

// Save writes the session back and refreshes its TTL.
func (s *SessionService) Save(ctx context.Context, session *form.Session) error {
	session.Touch()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKeyPrefix+session.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
