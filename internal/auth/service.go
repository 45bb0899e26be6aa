package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ardentinvoicing/ardent/internal/config"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// Claims is the JWT payload for API sessions
type Claims struct {
	UserID   string         `json:"user_id"`
	TenantID string         `json:"tenant_id,omitempty"`
	Role     types.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies session tokens and handles password hashing
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService creates a new auth service
func NewService(cfg *config.Configuration) *Service {
	return &Service{
		secret: []byte(cfg.Auth.Secret),
		expiry: cfg.Auth.TokenExpiry(),
	}
}

// GenerateToken signs a session token for the user
func (s *Service) GenerateToken(userID, tenantID string, role types.UserRole) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to sign session token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHintf("token signed with %v", t.Header["alg"]).
				Mark(ierr.ErrPermissionDenied)
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("invalid or expired session token").
			Mark(ierr.ErrPermissionDenied)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ierr.NewError("invalid session token").
			Mark(ierr.ErrPermissionDenied)
	}
	return claims, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("failed to hash password").
			Mark(ierr.ErrSystem)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password with its stored hash
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ierr.NewError("invalid credentials").
			WithHint("email or password is incorrect").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}
