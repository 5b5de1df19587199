package jwt

import (
	"errors"
	"time"

	"doctor-directory/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ScopeAdmin grants access to the admin API.
const ScopeAdmin = "admin"

var (
	ErrMissingSecret = errors.New("admin token secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims identify an operator allowed to manage directory records. There is
// no user table; Subject is a free-form operator name recorded in audit logs.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.AdminAuthConfig
	now    func() time.Time
}

func NewJWTService(cfg config.AdminAuthConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateAdminToken mints a signed admin token for subject. A non-positive
// ttl falls back to the configured expiry.
func (s *JWTService) GenerateAdminToken(subject string, ttl time.Duration) (string, error) {
	if s.config.Secret == "" {
		return "", ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = s.config.Expiry
	}

	now := s.now()
	claims := Claims{
		Scope: ScopeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if s.config.Secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
