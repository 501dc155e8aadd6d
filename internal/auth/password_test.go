package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)

	hash, err := h.Hash("secret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pass", hash)

	assert.NoError(t, h.Compare(hash, "secret-pass"))
	assert.Error(t, h.Compare(hash, "wrong-pass"))
}
