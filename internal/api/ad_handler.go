package api

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/getapet/server/internal/platform/images"
	"github.com/getapet/server/internal/service"
)

const (
	defaultPage       = 1
	defaultAdsPerPage = 10

	// multipartMemoryLimit bounds how much of an upload is held in memory
	// before spilling to a temp file.
	multipartMemoryLimit = 10 << 20
)

// AdHandler serves the ad listing, creation and deletion endpoints.
type AdHandler struct {
	service service.ClassifiedsService
	images  *images.Storage
	logger  *slog.Logger
}

// NewAdHandler creates an AdHandler. If log is nil the process default logger
// is used.
func NewAdHandler(svc service.ClassifiedsService, storage *images.Storage, log *slog.Logger) *AdHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AdHandler{
		service: svc,
		images:  storage,
		logger:  log.With(slog.String("component", "ad_handler")),
	}
}

// GetAllAds handles GET /api/get_all_ads. The category filter is optional;
// pageNum and adsPerPage default to 1 and 10.
func (h *AdHandler) GetAllAds(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, "pageNum", defaultPage)
	size := intParam(r, "adsPerPage", defaultAdsPerPage)
	category := r.FormValue("category")

	ads, total, err := h.service.ListAds(r.Context(), page, size, category)
	if err != nil {
		h.logger.Error("failed to fetch ads", slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, "Failed to fetch ads")
		return
	}

	h.logger.Info("fetched ads", slog.Int("count", len(ads)), slog.Int64("total", total))
	RespondWithJSON(w, http.StatusOK, AdListResponse{Ads: ads, TotalAds: total})
}

// GetUserAds handles GET /api/get_user_ads.
func (h *AdHandler) GetUserAds(w http.ResponseWriter, r *http.Request) {
	userID, ok := requiredIntParam(r, "user_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to fetch ads: invalid user_id")
		return
	}
	page := intParam(r, "pageNum", defaultPage)
	size := intParam(r, "adsPerPage", defaultAdsPerPage)

	ads, total, err := h.service.ListUserAds(r.Context(), userID, page, size)
	if err != nil {
		h.logger.Error("failed to fetch user ads",
			slog.Int("user_id", userID),
			slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to fetch ads: %v", err))
		return
	}

	h.logger.Info("fetched user ads", slog.Int("user_id", userID), slog.Int64("total", total))
	RespondWithJSON(w, http.StatusOK, AdListResponse{Ads: ads, TotalAds: total})
}

// GetUserFavoritesAds handles GET /api/get_user_favorites_ads.
func (h *AdHandler) GetUserFavoritesAds(w http.ResponseWriter, r *http.Request) {
	userID, ok := requiredIntParam(r, "user_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to fetch ads: invalid user_id")
		return
	}
	page := intParam(r, "pageNum", defaultPage)
	size := intParam(r, "adsPerPage", defaultAdsPerPage)

	ads, total, err := h.service.ListUserFavorites(r.Context(), userID, page, size)
	if err != nil {
		h.logger.Error("failed to fetch favorite ads",
			slog.Int("user_id", userID),
			slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to fetch ads: %v", err))
		return
	}

	h.logger.Info("fetched favorite ads", slog.Int("user_id", userID), slog.Int64("total", total))
	RespondWithJSON(w, http.StatusOK, AdListResponse{Ads: ads, TotalAds: total})
}

// CreateAd handles PUT /api/create_new_ad, a multipart form with an optional
// image part. The author identity is checked before the image is written so
// an unregistered caller never leaves a file behind; if the insert itself
// fails afterwards the saved image is removed again.
func (h *AdHandler) CreateAd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to create ad: %v", err))
		return
	}

	username := r.FormValue("user_name")
	authorID, ok := requiredIntParam(r, "user_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to create ad: invalid user_id")
		return
	}
	petAge, ok := floatParam(r, "pet_age")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to create ad: invalid pet_age")
		return
	}

	allowed, err := h.service.IsAllowedToCreateAd(r.Context(), username, authorID)
	if err != nil {
		h.logger.Error("failed to validate ad author", slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to create ad: %v", err))
		return
	}
	if !allowed {
		h.logger.Warn("unregistered user tried to create an ad", slog.String("username", username))
		RespondWithText(w, http.StatusBadRequest, "Must be a registered user to create an ad")
		return
	}

	imagePath, err := h.saveImage(r)
	if err != nil {
		h.logger.Error("failed to save ad image", slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to create ad: %v", err))
		return
	}

	petName := r.FormValue("pet_name")
	err = h.service.CreateAd(r.Context(), username, authorID,
		r.FormValue("category"), petName, petAge,
		r.FormValue("pet_gender"), r.FormValue("ad_content"), imagePath)
	if err != nil {
		h.logger.Error("failed to create ad", slog.String("error", err.Error()))
		h.images.Delete(imagePath)
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to create ad: %v", err))
		return
	}

	h.logger.Info("ad created successfully",
		slog.String("username", username),
		slog.String("pet_name", petName))
	RespondWithText(w, http.StatusOK, "Ad created successfully for pet "+petName)
}

// saveImage stores the optional "image" part and returns its public path, or
// "" when the request carries no image.
func (h *AdHandler) saveImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return h.images.Save(nil, "", 0)
	}
	if err != nil {
		return "", err
	}
	defer func(f multipart.File) {
		if cerr := f.Close(); cerr != nil {
			h.logger.Error("failed to close uploaded file", slog.String("error", cerr.Error()))
		}
	}(file)

	return h.images.Save(file, header.Filename, header.Size)
}

// DeleteAd handles DELETE /api/delete_ad. The ad row and its favorites go
// first; the image file is removed after so a failed delete never orphans
// the ad's picture reference.
func (h *AdHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	adID, ok := requiredIntParam(r, "ad_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to delete ad: invalid ad_id")
		return
	}
	imagePath := r.FormValue("image_path")

	if err := h.service.DeleteAd(r.Context(), adID); err != nil {
		h.logger.Error("failed to delete ad", slog.Int("ad_id", adID), slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to delete ad: %v", err))
		return
	}
	if !h.images.Delete(imagePath) {
		RespondWithText(w, http.StatusBadRequest, "Failed to delete ad: could not delete ad image")
		return
	}

	h.logger.Info("ad deleted successfully", slog.Int("ad_id", adID))
	RespondWithText(w, http.StatusOK, "Ad was deleted successfully")
}
