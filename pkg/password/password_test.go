package password_test

import (
	"testing"

	"terranova/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, password.Verify(&hash, "password123"))
	assert.False(t, password.Verify(&hash, "wrongpassword"))
}

func TestVerifyFailsClosedWithoutHash(t *testing.T) {
	assert.False(t, password.Verify(nil, "password123"))

	empty := ""
	assert.False(t, password.Verify(&empty, ""))
}

func TestBurnDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { password.Burn("anything") })
}
