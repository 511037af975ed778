package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserSessionJWT(t *testing.T) {
	sessionID := GenerateBrowserSessionID()

	token, err := GenerateBrowserSessionJWT(sessionID, "secret", 1)
	require.NoError(t, err)

	parsed, err := ParseBrowserSessionJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, sessionID, parsed)

	_, err = ParseBrowserSessionJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateBrowserSessionJWT(sessionID, "secret", -1)
	require.NoError(t, err)
	_, err = ParseBrowserSessionJWT(expired, "secret")
	assert.Error(t, err)
}

func TestHashIdentifier(t *testing.T) {
	hashed := HashIdentifier("Ada@Example.com ")

	assert.Len(t, hashed, 32)
	assert.Equal(t, hashed, HashIdentifier("ada@example.com"))
	assert.NotEqual(t, hashed, HashIdentifier("grace@example.com"))
	assert.NotContains(t, hashed, "ada")
}
