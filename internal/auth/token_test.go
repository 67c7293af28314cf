package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenererPuisValider(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret-de-test")

	token, err := GenererToken(7, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAndValidate(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.True(t, claims.EstAdmin)
}

func TestValiderTokenCorrompu(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret-de-test")

	token, err := GenererToken(7, false)
	require.NoError(t, err)

	_, err = ParseAndValidate(token + "x")
	assert.Error(t, err)
}
