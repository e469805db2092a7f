package service

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "gearguard/pkg/errors"
)

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateSessionToken(userID string) (token string, claims *SessionClaims, err error)
	ValidateToken(tokenString string) (*SessionClaims, error)
	GetSessionTTL() time.Duration
}

type jwtService struct {
	secretKey  string
	sessionTTL time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewJWTService(secretKey string, sessionTTL time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:  secretKey,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *jwtService) GenerateSessionToken(userID string) (string, *SessionClaims, error) {
	now := s.now()
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (s *jwtService) GetSessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *jwtService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		s.logger.Debug("session token rejected", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		if errors.Is(err, apperrors.ErrInvalidSigningMethod) {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
