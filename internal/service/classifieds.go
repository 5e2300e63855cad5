package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getapet/server/internal/domain"
	"github.com/getapet/server/internal/rowmap"
	"github.com/getapet/server/internal/service/auth"
	"github.com/getapet/server/internal/store"
)

// QueryExecutor is the execution engine contract the service depends on.
// Implemented by the postgres package; mocked in tests.
type QueryExecutor interface {
	// Query runs a parameterized query and returns the result rows.
	Query(ctx context.Context, query string, args ...any) ([]store.Row, error)

	// Update runs a parameterized statement and returns the affected-row count.
	Update(ctx context.Context, query string, args ...any) (int64, error)
}

// ClassifiedsService exposes the marketplace business operations.
type ClassifiedsService interface {
	// CreateUser validates the email and phone formats, hashes the password
	// and inserts the user. A duplicate username or email surfaces as a
	// store conflict; format failures never reach the database.
	CreateUser(ctx context.Context, username, password, displayName, email, phone string) error

	// Login returns the public profile when the username exists and the
	// password matches its stored digest, and (nil, nil) otherwise. A
	// missing user is not an error.
	Login(ctx context.Context, username, password string) (*domain.UserProfile, error)

	// IsAllowedToCreateAd reports whether the (username, userID) pair
	// corresponds to an existing user row.
	IsAllowedToCreateAd(ctx context.Context, username string, userID int) (bool, error)

	// CreateAd resolves the category name (falling back to the default
	// category when unknown), re-validates the author identity and inserts
	// the ad. Returns ErrNotAllowed when the identity check fails.
	CreateAd(ctx context.Context, username string, authorID int, category, petName string, petAge float64, petGender, adContent, imagePath string) error

	// DeleteAd removes the ad's favorite rows and then the ad itself.
	// Deleting a nonexistent ad is a failure; an ad with no favorites is not.
	DeleteAd(ctx context.Context, adID int) error

	// Favorite marks an ad for a user. A duplicate pair surfaces as a
	// store conflict.
	Favorite(ctx context.Context, userID, adID int) error

	// Unfavorite removes the pair. Removing a pair that does not exist is
	// not an error.
	Unfavorite(ctx context.Context, userID, adID int) error

	// ListAds returns one page of ads, optionally filtered by category name,
	// together with the total ad count. The page and the count come from
	// separate queries and may be mutually inconsistent under concurrent
	// writes.
	ListAds(ctx context.Context, page, size int, category string) ([]domain.AdDetail, int64, error)

	// ListUserAds returns one page of the ads authored by the user plus the
	// author's total.
	ListUserAds(ctx context.Context, userID, page, size int) ([]domain.AdDetail, int64, error)

	// ListUserFavorites returns one page of the user's favorite ads plus the
	// favorite total.
	ListUserFavorites(ctx context.Context, userID, page, size int) ([]domain.AdDetail, int64, error)
}

// ClassifiedsServiceImpl implements ClassifiedsService on top of a
// QueryExecutor and the password-hashing capability.
type ClassifiedsServiceImpl struct {
	executor QueryExecutor
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// NewClassifiedsService wires the service with its dependencies.
// If log is nil the process default logger is used.
func NewClassifiedsService(
	executor QueryExecutor,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	log *slog.Logger,
) *ClassifiedsServiceImpl {
	if log == nil {
		log = slog.Default()
	}
	return &ClassifiedsServiceImpl{
		executor: executor,
		hasher:   hasher,
		verifier: verifier,
		logger:   log.With(slog.String("component", "classifieds_service")),
	}
}

var _ ClassifiedsService = (*ClassifiedsServiceImpl)(nil)

// CreateUser implements ClassifiedsService.CreateUser.
func (s *ClassifiedsServiceImpl) CreateUser(ctx context.Context, username, password, displayName, email, phone string) error {
	if !domain.ValidateEmail(email) {
		return domain.ErrInvalidEmail
	}
	if !domain.ValidatePhone(phone) {
		return domain.ErrInvalidPhone
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	affected, err := s.executor.Update(ctx, sqlCreateUser, username, digest, displayName, email, phone)
	if err != nil {
		return err
	}
	if affected < 1 {
		s.logger.Warn("user wasn't created", slog.String("username", username))
		return fmt.Errorf("%w: user %q was not created", store.ErrExecutionFailed, username)
	}

	s.logger.Info("user created", slog.String("username", username))
	return nil
}

// Login implements ClassifiedsService.Login.
func (s *ClassifiedsServiceImpl) Login(ctx context.Context, username, password string) (*domain.UserProfile, error) {
	rows, err := s.executor.Query(ctx, sqlUserByUsername, username)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		s.logger.Info("no such user", slog.String("username", username))
		return nil, nil
	}

	digest, err := rowmap.String(rows[0], "password")
	if err != nil {
		return nil, err
	}
	if s.verifier.Compare(digest, password) != nil {
		return nil, nil
	}

	return rowmap.DecodeUserProfile(rows[0])
}

// IsAllowedToCreateAd implements ClassifiedsService.IsAllowedToCreateAd.
func (s *ClassifiedsServiceImpl) IsAllowedToCreateAd(ctx context.Context, username string, userID int) (bool, error) {
	rows, err := s.executor.Query(ctx, sqlValidateUser, username, userID)
	if err != nil {
		return false, err
	}
	return len(rows) == 1, nil
}

// resolveCategoryID looks up the category id for a displayed category name.
// An unknown name or a lookup failure falls back to the default category
// rather than failing ad creation over a typo.
func (s *ClassifiedsServiceImpl) resolveCategoryID(ctx context.Context, category string) int {
	rows, err := s.executor.Query(ctx, sqlCategoryIDByName, category)
	if err != nil {
		s.logger.Info("category lookup failed", slog.String("category", category), slog.String("error", err.Error()))
		return domain.DefaultCategoryID
	}
	id, err := rowmap.DecodeCategoryID(rows)
	if err != nil || id == 0 {
		s.logger.Error("no such category", slog.String("category", category))
		return domain.DefaultCategoryID
	}
	return id
}

// CreateAd implements ClassifiedsService.CreateAd.
func (s *ClassifiedsServiceImpl) CreateAd(ctx context.Context, username string, authorID int, category, petName string, petAge float64, petGender, adContent, imagePath string) error {
	allowed, err := s.IsAllowedToCreateAd(ctx, username, authorID)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: must be a registered user to create an ad", ErrNotAllowed)
	}

	categoryID := s.resolveCategoryID(ctx, category)

	affected, err := s.executor.Update(ctx, sqlCreateAd, categoryID, authorID, petName, petAge, petGender, adContent, imagePath)
	if err != nil {
		return err
	}
	if affected < 1 {
		s.logger.Warn("ad wasn't created", slog.String("pet_name", petName))
		return fmt.Errorf("%w: ad was not created", store.ErrExecutionFailed)
	}

	s.logger.Info("ad created",
		slog.String("username", username),
		slog.String("pet_name", petName),
		slog.Int("category_id", categoryID))
	return nil
}

// DeleteAd implements ClassifiedsService.DeleteAd.
func (s *ClassifiedsServiceImpl) DeleteAd(ctx context.Context, adID int) error {
	favorites, err := s.executor.Update(ctx, sqlDeleteAdFavorites, adID)
	if err != nil {
		return err
	}
	s.logger.Info("deleted ad from favorites", slog.Int64("count", favorites), slog.Int("ad_id", adID))

	affected, err := s.executor.Update(ctx, sqlDeleteAd, adID)
	if err != nil {
		return err
	}
	if affected < 1 {
		s.logger.Warn("ad wasn't deleted from ads table", slog.Int("ad_id", adID))
		return fmt.Errorf("%w: ad %d was not deleted", store.ErrExecutionFailed, adID)
	}
	return nil
}

// Favorite implements ClassifiedsService.Favorite.
func (s *ClassifiedsServiceImpl) Favorite(ctx context.Context, userID, adID int) error {
	affected, err := s.executor.Update(ctx, sqlCreateFavorite, userID, adID)
	if err != nil {
		return err
	}
	s.logger.Info("ad added to favorites",
		slog.Int64("count", affected),
		slog.Int("user_id", userID),
		slog.Int("ad_id", adID))
	return nil
}

// Unfavorite implements ClassifiedsService.Unfavorite.
func (s *ClassifiedsServiceImpl) Unfavorite(ctx context.Context, userID, adID int) error {
	affected, err := s.executor.Update(ctx, sqlDeleteFavorite, userID, adID)
	if err != nil {
		return err
	}
	// Zero affected rows means the pair was already gone; removal is
	// idempotent.
	s.logger.Info("ad removed from favorites",
		slog.Int64("count", affected),
		slog.Int("user_id", userID),
		slog.Int("ad_id", adID))
	return nil
}

// ListAds implements ClassifiedsService.ListAds.
func (s *ClassifiedsServiceImpl) ListAds(ctx context.Context, page, size int, category string) ([]domain.AdDetail, int64, error) {
	offset := Offset(page, size)

	var rows []store.Row
	var err error
	if category != "" {
		rows, err = s.executor.Query(ctx, sqlListAdsByCategory, category, size, offset)
	} else {
		rows, err = s.executor.Query(ctx, sqlListAds, size, offset)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countAds(ctx, category)
	if err != nil {
		return nil, 0, err
	}

	return rowmap.DecodeAdDetails(rows, s.logger), total, nil
}

func (s *ClassifiedsServiceImpl) countAds(ctx context.Context, category string) (int64, error) {
	var rows []store.Row
	var err error
	if category != "" {
		rows, err = s.executor.Query(ctx, sqlCountAdsByCategory, category)
	} else {
		rows, err = s.executor.Query(ctx, sqlCountAds)
	}
	if err != nil {
		return 0, err
	}
	return rowmap.DecodeCount(rows)
}

// ListUserAds implements ClassifiedsService.ListUserAds.
func (s *ClassifiedsServiceImpl) ListUserAds(ctx context.Context, userID, page, size int) ([]domain.AdDetail, int64, error) {
	rows, err := s.executor.Query(ctx, sqlListUserAds, userID, size, Offset(page, size))
	if err != nil {
		return nil, 0, err
	}

	countRows, err := s.executor.Query(ctx, sqlCountUserAds, userID)
	if err != nil {
		return nil, 0, err
	}
	total, err := rowmap.DecodeCount(countRows)
	if err != nil {
		return nil, 0, err
	}

	return rowmap.DecodeAdDetails(rows, s.logger), total, nil
}

// ListUserFavorites implements ClassifiedsService.ListUserFavorites.
func (s *ClassifiedsServiceImpl) ListUserFavorites(ctx context.Context, userID, page, size int) ([]domain.AdDetail, int64, error) {
	rows, err := s.executor.Query(ctx, sqlListUserFavorites, userID, size, Offset(page, size))
	if err != nil {
		return nil, 0, err
	}

	countRows, err := s.executor.Query(ctx, sqlCountUserFavorites, userID)
	if err != nil {
		return nil, 0, err
	}
	total, err := rowmap.DecodeCount(countRows)
	if err != nil {
		return nil, 0, err
	}

	return rowmap.DecodeAdDetails(rows, s.logger), total, nil
}
