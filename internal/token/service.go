package token

import (
	"errors"
	"strconv"
	"time"

	"clipstream-backend/internal/config"
	"clipstream-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrStaleRefreshToken = errors.New("refresh token is expired or already used")
	ErrPersistFailed     = errors.New("could not persist refresh token")
)

// AccessClaims is embedded in access tokens; Subject carries the user id.
type AccessClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Pair is one access/refresh token couple issued together.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store persists the single active refresh token per user.
type Store interface {
	SetRefreshToken(userID uint, token string) error
	SwapRefreshToken(userID uint, current, next string) (bool, error)
}

// Service issues and verifies the two token kinds and owns rotation: every
// successful login or refresh writes a new refresh token over the old one,
// which is the only revocation mechanism.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	store         Store
}

func NewService(cfg config.Auth, store Store) *Service {
	return &Service{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		store:         store,
	}
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) IssueAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.Id), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

func (s *Service) IssueRefreshToken(user *models.User) (string, error) {
	// The jti makes each issuance distinct even within the same second;
	// without it a rotation could re-mint the very token it is retiring.
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.Id), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
}

// ParseAccess verifies signature and expiry and returns the claims.
func (s *Service) ParseAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.accessSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseRefresh verifies a refresh token and returns the user id it names.
func (s *Service) ParseRefresh(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.refreshSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// UserID extracts the subject from access claims.
func (c *AccessClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Rotate issues a fresh pair and stores the new refresh token unconditionally.
// Used on login, where whatever was stored before is superseded.
func (s *Service) Rotate(user *models.User) (Pair, error) {
	pair, err := s.issuePair(user)
	if err != nil {
		return Pair{}, err
	}
	if err := s.store.SetRefreshToken(user.Id, pair.RefreshToken); err != nil {
		return Pair{}, ErrPersistFailed
	}
	return pair, nil
}

// RotateFrom issues a fresh pair but only commits it if presented still is
// the stored refresh token. The compare-and-swap makes concurrent refreshes
// with the same token lose deterministically instead of racing.
func (s *Service) RotateFrom(user *models.User, presented string) (Pair, error) {
	pair, err := s.issuePair(user)
	if err != nil {
		return Pair{}, err
	}
	swapped, err := s.store.SwapRefreshToken(user.Id, presented, pair.RefreshToken)
	if err != nil {
		return Pair{}, ErrPersistFailed
	}
	if !swapped {
		return Pair{}, ErrStaleRefreshToken
	}
	return pair, nil
}

func (s *Service) issuePair(user *models.User) (Pair, error) {
	access, err := s.IssueAccessToken(user)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.IssueRefreshToken(user)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}
