package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConflictError_ParsesDetail(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")

	ce := NewConflictError("Key (username)=(alice) already exists.", cause)
	assert.Equal(t, "username", ce.Column)
	assert.Equal(t, "alice", ce.Value)
	assert.True(t, IsConflict(ce))
	assert.Contains(t, ce.Error(), "username")
}

func TestNewConflictError_UnparseableDetail(t *testing.T) {
	ce := NewConflictError("no key diagnostics here", errors.New("boom"))
	assert.Empty(t, ce.Column)
	assert.Empty(t, ce.Value)
	assert.True(t, IsConflict(ce))
}

func TestConflictError_SurvivesWrapping(t *testing.T) {
	ce := NewConflictError("Key (email)=(a@b.c) already exists.", errors.New("boom"))
	wrapped := fmt.Errorf("creating user: %w", ce)

	assert.True(t, IsConflict(wrapped))

	var conflict *ConflictError
	require.ErrorAs(t, wrapped, &conflict)
	assert.Equal(t, "email", conflict.Column)
}

func TestRollbackError(t *testing.T) {
	rb := &RollbackError{
		RollbackErr: errors.New("connection lost"),
		Cause:       errors.New("constraint violated"),
	}

	assert.ErrorIs(t, rb, ErrRollbackFailed)
	assert.False(t, IsConflict(rb))
	assert.Contains(t, rb.Error(), "connection lost")
	assert.Contains(t, rb.Error(), "constraint violated")
}
