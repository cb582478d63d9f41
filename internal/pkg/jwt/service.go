package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	DefaultIssuer = "recruitai"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the account behind a token. The registered id (jti) is
// unique per token and keys revocation.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

func (c Claims) TokenID() string { return c.ID }

// Expiry is the zero time for tokens without an exp claim.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (Claims, error)
	ValidateRefreshToken(token string) (Claims, error)
}

// HMACService signs with HS256. Access and refresh tokens use separate
// secrets so one kind can never be replayed as the other.
type HMACService struct {
	access  keyset
	refresh keyset
	issuer  string
	now     func() time.Time
}

type keyset struct {
	secret []byte
	ttl    time.Duration
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		access:  keyset{secret: []byte(accessSecret), ttl: accessExpiresIn},
		refresh: keyset{secret: []byte(refreshSecret), ttl: refreshExpiresIn},
		issuer:  DefaultIssuer,
		now:     time.Now,
	}
}

// WithClock replaces the time source used to stamp and validate tokens.
func (s *HMACService) WithClock(now func() time.Time) *HMACService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.sign(s.access, TokenTypeAccess, userID, email)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(s.refresh, TokenTypeRefresh, userID, "")
}

func (s *HMACService) ValidateAccessToken(token string) (Claims, error) {
	return s.parse(s.access, TokenTypeAccess, token)
}

func (s *HMACService) ValidateRefreshToken(token string) (Claims, error) {
	return s.parse(s.refresh, TokenTypeRefresh, token)
}

func (s *HMACService) sign(k keyset, tokenType string, userID uuid.UUID, email string) (string, error) {
	if len(k.secret) == 0 || k.ttl <= 0 || userID == uuid.Nil {
		return "", ErrTokenInvalid
	}
	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(k.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(k.secret)
}

func (s *HMACService) parse(k keyset, tokenType, token string) (Claims, error) {
	if len(k.secret) == 0 || token == "" {
		return Claims{}, ErrTokenInvalid
	}
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(s.issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	if _, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return k.secret, nil
	}); err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if c.TokenType != tokenType || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
