package rowmap

import (
	"log/slog"

	"github.com/getapet/server/internal/domain"
	"github.com/getapet/server/internal/store"
)

// DecodeUserProfile maps a users row onto the public profile projection.
// Extra columns in the row (such as the password digest) are ignored.
func DecodeUserProfile(row store.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var err error

	if p.ID, err = Int(row, "id"); err != nil {
		return nil, err
	}
	if p.Username, err = String(row, "username"); err != nil {
		return nil, err
	}
	if p.DisplayName, err = String(row, "display_name"); err != nil {
		return nil, err
	}
	if p.Email, err = String(row, "email"); err != nil {
		return nil, err
	}
	if p.Phone, err = String(row, "phone"); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeAdDetail maps one row of the ad listing join onto an AdDetail.
func DecodeAdDetail(row store.Row) (*domain.AdDetail, error) {
	var d domain.AdDetail
	var err error

	if d.AdID, err = Int(row, "ad_id"); err != nil {
		return nil, err
	}
	if d.DisplayName, err = String(row, "display_name"); err != nil {
		return nil, err
	}
	if d.Email, err = String(row, "email"); err != nil {
		return nil, err
	}
	if d.Phone, err = String(row, "phone"); err != nil {
		return nil, err
	}
	if d.PetName, err = String(row, "pet_name"); err != nil {
		return nil, err
	}
	if d.Category, err = String(row, "category"); err != nil {
		return nil, err
	}
	if d.PetAge, err = Float64(row, "pet_age"); err != nil {
		return nil, err
	}
	if d.PetGender, err = String(row, "pet_gender"); err != nil {
		return nil, err
	}
	if d.AdContent, err = String(row, "ad_content"); err != nil {
		return nil, err
	}
	if d.ImagePath, err = String(row, "image_path"); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = Time(row, "created_at"); err != nil {
		return nil, err
	}
	return &d, nil
}

// DecodeAdDetails maps a page of listing rows. A row that fails to map is
// logged and dropped rather than failing the whole page.
func DecodeAdDetails(rows []store.Row, log *slog.Logger) []domain.AdDetail {
	if log == nil {
		log = slog.Default()
	}
	ads := make([]domain.AdDetail, 0, len(rows))
	for _, row := range rows {
		d, err := DecodeAdDetail(row)
		if err != nil {
			log.Error("failed to map listing row", slog.String("error", err.Error()))
			continue
		}
		ads = append(ads, *d)
	}
	return ads
}

// DecodeCategoryID extracts the id of a category lookup. An empty result maps
// to 0, which callers treat as "not found".
func DecodeCategoryID(rows []store.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return Int(rows[0], "id")
}

// DecodeCount extracts the single count value of an aggregate query result.
// An empty result maps to 0.
func DecodeCount(rows []store.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return Int64(rows[0], "count")
}
