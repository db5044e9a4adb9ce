package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	hashed, err := h.Hash("Secret123!")
	require.NoError(t, err)

	assert.True(t, h.Verify(string(hashed), "Secret123!"))
	assert.False(t, h.Verify(string(hashed), "Secret123"))
	assert.False(t, NewBcrypt(bcrypt.MinCost, "other").Verify(string(hashed), "Secret123!"))
}

func TestNewBcrypt_InvalidCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0, "").cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99, "").cost)
}
