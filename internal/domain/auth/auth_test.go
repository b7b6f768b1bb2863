package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lumbertrace/internal/core/apperror"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret"))

	token, exp, err := svc.GenerateAccessToken("gatekeeper")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	op, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "gatekeeper", op.Username)
	assert.NotEmpty(t, op.SessionID)
}

func TestJWT_Rejects(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("secret"))
	token, _, err := svc.GenerateAccessToken("gatekeeper")
	require.NoError(t, err)

	other := NewJWTService(DefaultJWTConfig("other-secret"))
	_, err = other.ValidateToken(token)
	assert.Error(t, err, "wrong secret")

	expired := NewJWTService(DefaultJWTConfig("secret"))
	expired.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = expired.ValidateToken(token)
	assert.Error(t, err, "expired")

	_, err = svc.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewService(NewJWTService(DefaultJWTConfig("secret")), "operator", string(hash))
	ctx := context.Background()

	tok, err := svc.Login(ctx, Credentials{Username: "operator", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tok.TokenType)

	op, err := svc.JWT().ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "operator", op.Username)

	for _, creds := range []Credentials{
		{Username: "operator", Password: "wrong"},
		{Username: "intruder", Password: "s3cret"},
	} {
		_, err := svc.Login(ctx, creds)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pine")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pine")))
}
