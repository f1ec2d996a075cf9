package utils_test

import (
	"testing"

	"github.com/skillbridge/skillbridge_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOneTimeToken(t *testing.T) {
	raw, digest, err := utils.GenerateOneTimeToken()
	require.NoError(t, err)

	// 32 random bytes, hex encoded
	assert.Len(t, raw, 64)
	// sha256 digest, hex encoded
	assert.Len(t, digest, 64)
	assert.NotEqual(t, raw, digest)

	assert.True(t, utils.CompareTokenHash(raw, digest))
	assert.False(t, utils.CompareTokenHash(raw+"x", digest))
	assert.False(t, utils.CompareTokenHash("", digest))
}

func TestGenerateOneTimeToken_Unique(t *testing.T) {
	first, _, err := utils.GenerateOneTimeToken()
	require.NoError(t, err)
	second, _, err := utils.GenerateOneTimeToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashToken_Deterministic(t *testing.T) {
	assert.Equal(t, utils.HashToken("abc"), utils.HashToken("abc"))
	assert.NotEqual(t, utils.HashToken("abc"), utils.HashToken("abd"))
}
