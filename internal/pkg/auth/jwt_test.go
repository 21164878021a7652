package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunahan/uniplanner/internal/pkg/apperrors"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "uniplanner.test",
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testService(time.Hour)

	token, err := svc.GenerateToken(42, "a.kaya@uni.edu", "planner")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a.kaya@uni.edu", claims.Email)
	assert.Equal(t, "planner", claims.RoleType)
	assert.Equal(t, "uniplanner.test", claims.Issuer)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := testService(-time.Minute)

	token, err := svc.GenerateToken(42, "a.kaya@uni.edu", "planner")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	token, err := testService(time.Hour).GenerateToken(42, "a.kaya@uni.edu", "planner")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:      "different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "uniplanner.test",
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsEmptyToken(t *testing.T) {
	_, err := testService(time.Hour).ValidateToken("")
	assert.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFormat))
}
