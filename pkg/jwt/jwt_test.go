package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secreto", "user-1", "vendedor", "rasiva-api", 60)
	require.NoError(t, err)

	userID, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "vendedor", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secreto", "user-1", "admin", "rasiva-api", 60)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secreto", "user-1", "admin", "rasiva-api", -5)
	require.NoError(t, err)

	_, _, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "user-1", "admin", "x", 60)
	assert.ErrorIs(t, err, errEmptySecret)

	_, _, err = Parse("", "abc")
	assert.ErrorIs(t, err, errEmptySecret)
}
