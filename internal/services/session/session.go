// Package session содержит логику бизнес-уровня для управления серверными
// сессиями: создание с непрозрачным токеном, проверка активности и срока
// действия, отзыв при выходе.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	cachelib "github.com/ravshanbekov/auth-gateway/internal/cache"
	"github.com/ravshanbekov/auth-gateway/internal/lib/sl"
	"github.com/ravshanbekov/auth-gateway/internal/metrics"
	"github.com/ravshanbekov/auth-gateway/internal/models"
	"github.com/ravshanbekov/auth-gateway/internal/rabbitmq"
)

// Repository описывает контракт для работы с сессиями в базе данных.
type Repository interface {
	// CreateSession сохраняет сессию и возвращает её с присвоенным ID.
	CreateSession(ctx context.Context, session models.Session) (*models.Session, error)

	// FindActiveSessionByToken возвращает действующую сессию по токену
	// или sql.ErrNoRows.
	FindActiveSessionByToken(ctx context.Context, token string) (*models.Session, error)

	// RevokeSessionByToken отзывает сессию и возвращает изменённую запись
	// или sql.ErrNoRows.
	RevokeSessionByToken(ctx context.Context, token string) (*models.Session, error)
}

// Cache описывает кэш сессий перед базой данных. Кэш не авторитетен:
// его ошибки логируются и не влияют на результат операции.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher публикует события жизненного цикла сессий.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service управляет жизненным циклом сессий.
type Service struct {
	sessions   Repository
	cache      Cache          // может быть nil
	publisher  EventPublisher // может быть nil
	log        *slog.Logger
	defaultTTL time.Duration
}

// New создает новый экземпляр Service. Cache и publisher опциональны.
func New(sessions Repository, cache Cache, publisher EventPublisher, log *slog.Logger, defaultTTL time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		cache:      cache,
		publisher:  publisher,
		log:        log,
		defaultTTL: defaultTTL,
	}
}

// Create выпускает новую сессию для пользователя: генерирует
// криптографически случайный токен, устанавливает срок действия
// now + ttl (при ttl <= 0 берется TTL по умолчанию) и сохраняет запись.
// Ошибка хранилища передается вызывающему без повторных попыток.
func (s *Service) Create(ctx context.Context, userID int64, userAgent string, ttl time.Duration) (*models.Session, error) {
	const op = "session.Create"

	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now().UTC()
	session := models.Session{
		UserID:    userID,
		Token:     uuid.NewString(),
		UserAgent: userAgent,
		IsActive:  true,
		ExpiresAt: now.Add(ttl),
	}

	created, err := s.sessions.CreateSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.SessionsCreated.Inc()
	s.publish("session.created", created)
	return created, nil
}

// Get возвращает действующую сессию по токену. Для отсутствующего,
// отозванного или истёкшего токена возвращает models.ErrUnauthenticated.
// Срок действия не продлевается.
func (s *Service) Get(ctx context.Context, token string) (*models.Session, error) {
	const op = "session.Get"

	if token == "" {
		return nil, models.ErrUnauthenticated
	}

	now := time.Now().UTC()
	if s.cache != nil {
		var cached models.Session
		found, err := s.cache.Get(ctx, cachelib.SessionKey(token), &cached)
		if err != nil {
			s.log.Warn("session cache lookup failed", sl.Err(err))
		} else if found {
			if !cached.Valid(now) {
				return nil, models.ErrUnauthenticated
			}
			return &cached, nil
		}
	}

	session, err := s.sessions.FindActiveSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cachelib.SessionKey(token), session, time.Until(session.ExpiresAt)); err != nil {
			s.log.Warn("session cache write failed", sl.Err(err))
		}
	}
	return session, nil
}

// Revoke отзывает сессию по токену. Для неизвестного токена операция
// ничего не делает и завершается успешно (идемпотентный logout).
func (s *Service) Revoke(ctx context.Context, token string) error {
	const op = "session.Revoke"

	session, err := s.sessions.RevokeSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cachelib.SessionKey(token)); err != nil {
			s.log.Warn("session cache invalidation failed", sl.Err(err))
		}
	}

	metrics.SessionsRevoked.Inc()
	s.publish("session.revoked", session)
	return nil
}

// publish отправляет событие жизненного цикла сессии. Публикация
// выполняется по возможности: ошибка логируется и не влияет на операцию.
func (s *Service) publish(routingKey string, session *models.Session) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.SessionEvent{
		SessionID:  session.ID,
		UserID:     session.UserID,
		UserAgent:  session.UserAgent,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		s.log.Warn("failed to publish session event",
			slog.String("routing_key", routingKey), sl.Err(err))
	}
}
