package domain

import "regexp"

// Email must look like local@domain.tld; phone may contain only digits and
// hyphens. Uniqueness of username and email is enforced by the storage
// layer, not here.
var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[\d-]+$`)
)

// User is a registered account as stored. The password digest never leaves
// the service layer.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	PasswordDigest string `json:"-"`
	DisplayName    string `json:"display_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// UserProfile is the public projection of a user, returned on successful
// login. It deliberately excludes the password digest.
type UserProfile struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// ValidateEmail reports whether email is acceptable for registration.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone reports whether phone is acceptable for registration.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
