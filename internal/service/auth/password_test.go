package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher()
	verifier := NewBcryptVerifier()

	digest, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", digest)

	assert.NoError(t, verifier.Compare(digest, "s3cret"))
	assert.Error(t, verifier.Compare(digest, "wrong"))
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher()

	first, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	second, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
