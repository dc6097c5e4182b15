package services

import (
	"errors"
	"strings"

	"agrofeira/internal/apperrors"
	"agrofeira/internal/models"
	"agrofeira/internal/repositories"
	"agrofeira/pkg/logger"
	"agrofeira/pkg/password"
	"agrofeira/pkg/token"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike, so callers cannot probe which emails are registered.
const ErrInvalidCredentials = "invalid credentials"

// AuthService handles login and bearer token validation.
type AuthService struct {
	producers repositories.ProducerRepository
	tokens    *token.Manager
	log       *logger.Logger
}

// NewAuthService creates a new AuthService. A nil log discards output.
func NewAuthService(producers repositories.ProducerRepository, tokens *token.Manager, log *logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		producers: producers,
		tokens:    tokens,
		log:       log,
	}
}

// Login authenticates a producer and returns it along with a signed token.
func (s *AuthService) Login(email, plain string) (*models.Producer, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || plain == "" {
		return nil, "", apperrors.Validation("email and password are required")
	}

	producer, err := s.producers.FindByEmail(email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, "", apperrors.Unauthenticated(ErrInvalidCredentials)
		}
		return nil, "", err
	}

	if err := password.Compare(producer.Password, plain); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Warn().Err(err).Str("producer_id", producer.ID).Msg("stored password hash is unreadable")
		}
		return nil, "", apperrors.Unauthenticated(ErrInvalidCredentials)
	}

	signed, err := s.tokens.Sign(producer.ID, producer.Name)
	if err != nil {
		return nil, "", apperrors.Internal("failed to generate token", err)
	}
	return producer, signed, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		s.log.Debug().Err(err).Msg("token validation failed")
		return nil, &apperrors.Error{
			Kind:    apperrors.KindUnauthenticated,
			Message: "invalid or expired token",
			Err:     err,
		}
	}
	return claims, nil
}
