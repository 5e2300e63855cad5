package rowmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getapet/server/internal/store"
)

func TestString(t *testing.T) {
	row := store.Row{"name": "Rex", "raw": []byte("Buddy"), "missing_value": nil, "bad": 42}

	s, err := String(row, "name")
	require.NoError(t, err)
	assert.Equal(t, "Rex", s)

	s, err = String(row, "raw")
	require.NoError(t, err)
	assert.Equal(t, "Buddy", s)

	s, err = String(row, "missing_value")
	require.NoError(t, err)
	assert.Empty(t, s)

	s, err = String(row, "not_in_row")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = String(row, "bad")
	var mapErr *MappingError
	require.ErrorAs(t, err, &mapErr)
	assert.Equal(t, "bad", mapErr.Column)
}

func TestInt(t *testing.T) {
	row := store.Row{"a": int64(7), "b": int32(8), "c": 9, "bad": "ten"}

	for col, want := range map[string]int{"a": 7, "b": 8, "c": 9, "absent": 0} {
		got, err := Int(row, col)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := Int(row, "bad")
	assert.Error(t, err)
}

func TestFloat64(t *testing.T) {
	row := store.Row{"f": 2.5, "i": int64(3), "bad": "x"}

	got, err := Float64(row, "f")
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)

	got, err = Float64(row, "i")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = Float64(row, "absent")
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = Float64(row, "bad")
	assert.Error(t, err)
}

func TestTime(t *testing.T) {
	now := time.Now()
	row := store.Row{"ok": now, "null_value": nil, "bad": "2024-01-01"}

	got, err := Time(row, "ok")
	require.NoError(t, err)
	assert.True(t, now.Equal(got))

	got, err = Time(row, "null_value")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = Time(row, "absent")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	// Temporal columns are strict: a non-time value is a mapping failure,
	// not a zero value.
	_, err = Time(row, "bad")
	var mapErr *MappingError
	require.ErrorAs(t, err, &mapErr)
	assert.Equal(t, "bad", mapErr.Column)
	assert.Equal(t, "2024-01-01", mapErr.Value)
}
