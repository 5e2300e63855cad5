package service

// Statement shapes mirror the production schema exactly: join order,
// descending id ordering and LIMIT/OFFSET pagination are part of the
// behavioral contract.
const (
	sqlCreateUser = `INSERT INTO users (username, password, display_name, email, phone) VALUES ($1, $2, $3, $4, $5)`

	sqlUserByUsername = `SELECT id, password, username, display_name, email, phone FROM users WHERE username = $1`

	sqlValidateUser = `SELECT * FROM users WHERE username = $1 AND id = $2`

	sqlCreateAd = `INSERT INTO ads (category_id, author_id, pet_name, pet_age, pet_gender, ad_content, image_path) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	sqlDeleteAd = `DELETE FROM ads WHERE id = $1`

	sqlDeleteAdFavorites = `DELETE FROM favorites WHERE ad_id = $1`

	sqlCreateFavorite = `INSERT INTO favorites (user_id, ad_id) VALUES ($1, $2)`

	sqlDeleteFavorite = `DELETE FROM favorites WHERE user_id = $1 AND ad_id = $2`

	sqlCategoryIDByName = `SELECT id FROM categories WHERE category = $1`

	sqlListAds = `
		SELECT ad.id AS ad_id, u.display_name, u.email, u.phone, ad.pet_name, c.category, ad.pet_age, ad.pet_gender, ad.ad_content, ad.image_path, ad.created_at
		FROM users u
		JOIN ads ad ON u.id = ad.author_id
		JOIN categories c ON c.id = ad.category_id
		ORDER BY ad.id DESC
		LIMIT $1 OFFSET $2`

	sqlListAdsByCategory = `
		SELECT ad.id AS ad_id, u.display_name, u.email, u.phone, ad.pet_name, c.category, ad.pet_age, ad.pet_gender, ad.ad_content, ad.image_path, ad.created_at
		FROM users u
		JOIN ads ad ON u.id = ad.author_id
		JOIN categories c ON c.id = ad.category_id
		WHERE c.category = $1
		ORDER BY ad.id DESC
		LIMIT $2 OFFSET $3`

	sqlListUserAds = `
		SELECT ad.id AS ad_id, u.display_name, u.email, u.phone, ad.pet_name, c.category, ad.pet_age, ad.pet_gender, ad.ad_content, ad.image_path, ad.created_at
		FROM users u
		JOIN ads ad ON u.id = ad.author_id
		JOIN categories c ON c.id = ad.category_id
		WHERE u.id = $1
		ORDER BY ad.id DESC
		LIMIT $2 OFFSET $3`

	sqlListUserFavorites = `
		SELECT ad.id AS ad_id, u.display_name, u.email, u.phone, ad.pet_name, c.category, ad.pet_age, ad.pet_gender, ad.ad_content, ad.image_path, ad.created_at
		FROM users u
		JOIN ads ad ON u.id = ad.author_id
		JOIN categories c ON c.id = ad.category_id
		JOIN favorites f ON f.ad_id = ad.id
		WHERE f.user_id = $1
		ORDER BY ad.id DESC
		LIMIT $2 OFFSET $3`

	sqlCountAds = `SELECT COUNT(*) AS count FROM ads`

	sqlCountAdsByCategory = `SELECT COUNT(*) AS count FROM ads ad JOIN categories c ON c.id = ad.category_id WHERE c.category = $1`

	sqlCountUserAds = `SELECT COUNT(*) AS count FROM ads WHERE author_id = $1`

	sqlCountUserFavorites = `SELECT COUNT(*) AS count FROM ads ad JOIN favorites f ON f.ad_id = ad.id WHERE f.user_id = $1`
)
