package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"social-api/internal/domain"
)

const tokenIssuer = "social-api"

// JWTService emite y valida tokens de sesión firmados con HS256.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Claims es el conjunto de claims del token; es legible por cualquiera, no
// debe llevar datos secretos.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

var (
	ErrSigningKeyMissing = errors.New("jwt signing key missing")
	ErrTokenInvalid      = errors.New("jwt invalid")
	ErrTokenExpired      = errors.New("jwt expired")
)

// NewJWTService crea el emisor. Con ttl <= 0 los tokens no expiran.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl < 0 {
		ttl = 0
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: tokenIssuer,
		now:    time.Now,
	}
}

// Configured indica si hay un secreto de firma.
func (s *JWTService) Configured() bool {
	return len(s.secret) > 0
}

// Issue firma un token con el nombre del usuario como claim.
func (s *JWTService) Issue(user domain.User) (string, error) {
	if !s.Configured() {
		return "", ErrSigningKeyMissing
	}
	now := s.now().UTC()
	claims := Claims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			Subject:  user.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifica firma, algoritmo, emisor y expiración.
func (s *JWTService) Parse(tokenString string) (Claims, error) {
	if !s.Configured() {
		return Claims{}, ErrSigningKeyMissing
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenInvalid
	}

	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Name) == "" || strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}
