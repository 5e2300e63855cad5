package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"a.b+c@sub.domain.org",
		"x@y.z",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{
		"",
		"alice",
		"alice@example",
		"@example.com",
		"alice@.com",
		"a lice@example.com",
		"alice@exa mple.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"0521234567", "052-123-4567", "---", "1"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{"", "052 1234567", "+972521234567", "phone", "052.123"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), "expected %q to be invalid", phone)
	}
}
