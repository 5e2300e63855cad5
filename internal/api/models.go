package api

import "github.com/getapet/server/internal/domain"

// RegisterRequest carries the user registration form fields.
type RegisterRequest struct {
	Username    string `validate:"required"`
	Password    string `validate:"required"`
	DisplayName string `validate:"required"`
	Email       string `validate:"required"`
	Phone       string `validate:"required"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// AdListResponse is the envelope for every listing endpoint: one page of ads
// plus the total matching count.
type AdListResponse struct {
	Ads      []domain.AdDetail `json:"ads"`
	TotalAds int64             `json:"totalAds"`
}
