package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, h.Check("secret123", hash))
	assert.False(t, h.Check("secret124", hash))
	assert.False(t, h.Check("", hash))
	assert.False(t, h.Check("secret123", "not-a-hash"))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("s3cr3t", time.Hour)
	id := uuid.New()

	raw, err := svc.Issue(id)
	require.NoError(t, err)

	got, err := svc.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenExpires(t *testing.T) {
	svc := NewTokenService("s3cr3t", 24*time.Hour)
	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	raw, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = svc.Parse(raw)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = svc.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherSecretAndAlgorithm(t *testing.T) {
	raw, err := NewTokenService("one", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": uuid.NewString(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("one", time.Hour).Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWithoutUserID(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenService("k", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipalRoles(t *testing.T) {
	admin := Principal{Role: user.RoleAdmin}
	staff := Principal{Role: user.RoleStaff}
	customer := Principal{Role: user.RoleCustomer}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsStaff())
	assert.True(t, staff.IsStaff())
	assert.False(t, staff.IsAdmin())
	assert.False(t, customer.IsStaff())
	assert.True(t, customer.HasRole(user.RoleStaff, user.RoleCustomer))
}
