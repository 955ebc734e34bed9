package token

import (
	"testing"
	"time"

	"clipstream-backend/internal/config"
	"clipstream-backend/internal/models"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	tokens map[uint]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{tokens: map[uint]string{}}
}

func (s *fakeStore) SetRefreshToken(userID uint, token string) error {
	s.tokens[userID] = token
	return nil
}

func (s *fakeStore) SwapRefreshToken(userID uint, current, next string) (bool, error) {
	if s.tokens[userID] != current {
		return false, nil
	}
	s.tokens[userID] = next
	return true, nil
}

func newTestService(store Store) *Service {
	return NewService(config.Auth{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}, store)
}

func testUser() *models.User {
	return &models.User{Id: 42, Username: "alice", Email: "alice@example.com"}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(newFakeStore())
	user := testUser()

	tokenString, err := svc.IssueAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ParseAccess(tokenString)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice@example.com", claims.Email)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService(newFakeStore())

	tokenString, err := svc.IssueRefreshToken(testUser())
	require.NoError(t, err)

	id, err := svc.ParseRefresh(tokenString)
	require.NoError(t, err)
	require.Equal(t, uint(42), id)
}

func TestParseRejectsWrongKind(t *testing.T) {
	svc := newTestService(newFakeStore())
	user := testUser()

	access, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)

	// Tokens are signed with different secrets, so each parser rejects the
	// other kind.
	_, err = svc.ParseRefresh(access)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ParseAccess(refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	store := newFakeStore()
	svc := NewService(config.Auth{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     -time.Minute,
		RefreshTTL:    -time.Minute,
	}, store)

	tokenString, err := svc.IssueAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ParseAccess(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.ParseAccess("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ParseRefresh("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	svc := newTestService(newFakeStore())
	user := testUser()

	// Back-to-back issuances land on the same second-granularity iat/exp,
	// so only the jti keeps the token strings apart.
	first, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)
	second, err := svc.IssueRefreshToken(user)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	firstAccess, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	secondAccess, err := svc.IssueAccessToken(user)
	require.NoError(t, err)
	require.NotEqual(t, firstAccess, secondAccess)
}

func TestRotateFromReturnsDifferentToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	user := testUser()

	first, err := svc.Rotate(user)
	require.NoError(t, err)

	second, err := svc.RotateFrom(user, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.RotateFrom(user, first.RefreshToken)
	require.ErrorIs(t, err, ErrStaleRefreshToken)
}

func TestRotateStoresNewRefreshToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	user := testUser()

	pair, err := svc.Rotate(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.Equal(t, pair.RefreshToken, store.tokens[user.Id])
}

func TestRotateFromSwapsStoredToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	user := testUser()

	first, err := svc.Rotate(user)
	require.NoError(t, err)

	second, err := svc.RotateFrom(user, first.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, second.RefreshToken, store.tokens[user.Id])
}

func TestRotateFromRejectsStaleToken(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	user := testUser()

	first, err := svc.Rotate(user)
	require.NoError(t, err)

	_, err = svc.RotateFrom(user, first.RefreshToken)
	require.NoError(t, err)

	// Replaying the already-consumed token loses the compare-and-swap.
	_, err = svc.RotateFrom(user, first.RefreshToken)
	require.ErrorIs(t, err, ErrStaleRefreshToken)
}
