package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-consent-api/internal/auth"
	"clinic-consent-api/internal/model"
)

const secret = "test-secret"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("Str0ng!pw")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, "Str0ng!pw"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		ok   bool
	}{
		{"valid", "Str0ng!pw", true},
		{"too short", "S0!a", false},
		{"too long", "Str0ng!pwStr0ng!pw", false},
		{"no upper", "str0ng!pw", false},
		{"no lower", "STR0NG!PW", false},
		{"no digit", "Strong!pw", false},
		{"no symbol", "Str0ngpw1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidatePassword(tt.pw)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, auth.ErrWeakPassword)
			}
		})
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	tok, err := auth.MakeToken("test-uid", model.RolePhysician, secret)
	require.NoError(t, err)

	claims, err := auth.ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "test-uid", claims.UserID)
	assert.Equal(t, model.RolePhysician, claims.Role)

	// verify expiry is ~15 min from now
	diff := time.Until(claims.ExpiresAt.Time)
	assert.True(t, diff > 14*time.Minute && diff < 16*time.Minute, "expiry %v", diff)
}

func TestAlgorithmConfusion(t *testing.T) {
	tok, err := auth.MakeToken("uid", model.RolePatient, secret)
	require.NoError(t, err)

	_, err = auth.ParseToken(tok, "wrong-secret")
	assert.Error(t, err)

	_, err = auth.ParseToken("not.a.token", secret)
	assert.Error(t, err)
}

func TestUnknownRoleRejected(t *testing.T) {
	tok, err := auth.MakeToken("uid", model.Role("nurse"), secret)
	require.NoError(t, err)

	_, err = auth.ParseToken(tok, secret)
	assert.ErrorIs(t, err, auth.ErrBadToken)
}
