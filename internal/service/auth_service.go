package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"social-api/internal/domain"
	"social-api/internal/repository"
)

var (
	ErrDuplicateEmail     = errors.New("user already registered")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
)

// AuthService coordina el alta y el login de usuarios.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	hasher  PasswordHasher
	tokens  *JWTService
	limiter LoginRateLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher PasswordHasher, tokens *JWTService, limiter LoginRateLimiter) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hasher == nil {
		hasher = NewBcryptHasher(DefaultPasswordCost)
	}
	return &AuthService{
		logger:  logger,
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
	}
}

type SignupInput struct {
	Name       string
	Email      string
	Password   string
	RePassword string
}

type LoginInput struct {
	Email    string
	Password string
	ClientIP string
}

type LoginResult struct {
	Token string
	User  domain.User
}

// Signup valida, hashea y persiste un usuario nuevo. El orden de las
// validaciones define qué error ve el cliente: duplicado, nombre,
// confirmación, fortaleza y por último forma del email.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	email := normalizeEmail(input.Email)
	if email != "" {
		_, err := s.users.GetByEmail(ctx, email)
		if err == nil {
			return domain.User{}, ErrDuplicateEmail
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("lookup user by email: %w", err)
		}
	}

	if err := ValidateName(input.Name); err != nil {
		return domain.User{}, err
	}
	if err := ValidateConfirmation(input.Password, input.RePassword); err != nil {
		return domain.User{}, err
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return domain.User{}, err
	}
	if err := ValidateEmailShape(email); err != nil {
		return domain.User{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	// TODO: dejar de persistir la confirmación cuando los clientes no dependan del campo.
	confirmationHash, err := s.hasher.Hash(input.RePassword)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash confirmation: %w", err)
	}

	user := domain.User{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(input.Name),
		Email:            email,
		PasswordHash:     passwordHash,
		ConfirmationHash: confirmationHash,
		Follow:           0,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Warn("concurrent signup lost unique email race", zap.String("email", email))
			return domain.User{}, ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifica credenciales y emite un token. Email desconocido y
// contraseña incorrecta devuelven el mismo error y cuentan como fallo para
// el limiter; un login correcto limpia los fallos de esa clave.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	if s.users == nil || s.tokens == nil {
		return LoginResult{}, errors.New("auth service not configured")
	}

	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return LoginResult{}, ErrMissingCredentials
	}
	attemptKey := LoginAttemptKey(input.ClientIP, email)
	if s.limiter != nil && !s.limiter.Allow(attemptKey) {
		s.logger.Warn("login rate limited", zap.String("email", email), zap.String("client_ip", input.ClientIP))
		return LoginResult{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(attemptKey)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user by email: %w", err)
	}
	if user.PasswordHash == "" || !s.hasher.Check(input.Password, user.PasswordHash) {
		s.recordFailure(attemptKey)
		return LoginResult{}, ErrInvalidCredentials
	}
	if s.limiter != nil {
		s.limiter.Reset(attemptKey)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) recordFailure(key string) {
	if s.limiter != nil {
		s.limiter.RecordFailure(key)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
