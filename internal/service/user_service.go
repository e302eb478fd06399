package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"social-api/internal/domain"
	"social-api/internal/repository"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingUserID      = errors.New("user id is required")
	ErrInvalidFollowDelta = errors.New("follow delta must be +1 or -1")
)

// UserService coordina lecturas de perfil y el contador de seguidores.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{logger: logger, users: users}
}

func (s *UserService) Follow(ctx context.Context, userID string) (int, error) {
	return s.AdjustFollow(ctx, userID, 1)
}

func (s *UserService) Unfollow(ctx context.Context, userID string) (int, error) {
	return s.AdjustFollow(ctx, userID, -1)
}

// AdjustFollow suma delta al contador en el store; no hay piso en cero.
func (s *UserService) AdjustFollow(ctx context.Context, userID string, delta int) (int, error) {
	if delta != 1 && delta != -1 {
		return 0, ErrInvalidFollowDelta
	}
	id, err := parseUserID(userID)
	if err != nil {
		return 0, err
	}
	follow, err := s.users.AdjustFollow(ctx, id, delta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("adjust follow: %w", err)
	}
	s.logger.Debug("follow counter adjusted", zap.String("user_id", id), zap.Int("delta", delta), zap.Int("follow", follow))
	return follow, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// parseUserID normaliza el id; un id que no es UUID no puede existir.
func parseUserID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingUserID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrUserNotFound
	}
	return id.String(), nil
}
