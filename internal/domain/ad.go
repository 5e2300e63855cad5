package domain

import "time"

// DefaultCategoryID is used when a category name cannot be resolved.
// Falling back instead of failing keeps ad creation working when the client
// sends an unknown or misspelled category.
const DefaultCategoryID = 1

// Ad is a pet-adoption listing as stored. ImagePath is empty when the ad has
// no image.
type Ad struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	AuthorID   int       `json:"author_id"`
	PetName    string    `json:"pet_name"`
	PetAge     float64   `json:"pet_age"`
	PetGender  string    `json:"pet_gender"`
	AdContent  string    `json:"ad_content"`
	ImagePath  string    `json:"image_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdDetail is the listing projection served to clients: the ad joined with
// its author's contact fields and the category name.
type AdDetail struct {
	AdID        int       `json:"ad_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	PetName     string    `json:"pet_name"`
	Category    string    `json:"category"`
	PetAge      float64   `json:"pet_age"`
	PetGender   string    `json:"pet_gender"`
	AdContent   string    `json:"ad_content"`
	ImagePath   string    `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is read-only reference data.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"category"`
}

// Favorite is the (user, ad) join row. The pair is unique in storage.
type Favorite struct {
	UserID int `json:"user_id"`
	AdID   int `json:"ad_id"`
}
