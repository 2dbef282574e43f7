package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("Secret123!")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	assert.NotEqual(t, "Secret123!", h)

	assert.True(t, CheckPassword(h, "Secret123!"))
	assert.False(t, CheckPassword(h, "wrong"))
}

func TestCheckPassword_BadHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("not-a-bcrypt-hash", "anything"))
}
