package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/onamfest/house-registration/internal/utils"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("onam-admin-2025"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, utils.VerifyPassword(string(hash), "onam-admin-2025"))
	assert.False(t, utils.VerifyPassword(string(hash), "wrong-password"))
	assert.False(t, utils.VerifyPassword("not-a-bcrypt-hash", "onam-admin-2025"))
}
