package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getapet/server/internal/service"
	"github.com/getapet/server/internal/store"
)

// FavoriteHandler serves the favorite add/remove endpoints.
type FavoriteHandler struct {
	service service.ClassifiedsService
	logger  *slog.Logger
}

// NewFavoriteHandler creates a FavoriteHandler. If log is nil the process
// default logger is used.
func NewFavoriteHandler(svc service.ClassifiedsService, log *slog.Logger) *FavoriteHandler {
	if log == nil {
		log = slog.Default()
	}
	return &FavoriteHandler{
		service: svc,
		logger:  log.With(slog.String("component", "favorite_handler")),
	}
}

// Add handles PUT /api/add_ads_to_favorites. Favoriting the same ad twice is
// a conflict, not a crash.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requiredIntParam(r, "user_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to add to favorites: invalid user_id")
		return
	}
	adID, ok := requiredIntParam(r, "ad_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to add to favorites: invalid ad_id")
		return
	}

	if err := h.service.Favorite(r.Context(), userID, adID); err != nil {
		if store.IsConflict(err) {
			h.logger.Warn("ad is already in favorites",
				slog.Int("user_id", userID),
				slog.Int("ad_id", adID))
			RespondWithText(w, http.StatusBadRequest, "Ad is already in favorites")
			return
		}
		h.logger.Error("failed to add to favorites",
			slog.Int("user_id", userID),
			slog.Int("ad_id", adID),
			slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to add to favorites: %v", err))
		return
	}

	h.logger.Info("ad added to favorites", slog.Int("user_id", userID), slog.Int("ad_id", adID))
	RespondWithText(w, http.StatusOK, "Ad was successfully added to favorites")
}

// Remove handles DELETE /api/delete_ad_from_favorites. Removing an ad that is
// not in the favorites succeeds.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requiredIntParam(r, "user_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to removed favorite ad: invalid user_id")
		return
	}
	adID, ok := requiredIntParam(r, "ad_id")
	if !ok {
		RespondWithText(w, http.StatusBadRequest, "Failed to removed favorite ad: invalid ad_id")
		return
	}

	if err := h.service.Unfavorite(r.Context(), userID, adID); err != nil {
		h.logger.Error("failed to remove favorite ad",
			slog.Int("user_id", userID),
			slog.Int("ad_id", adID),
			slog.String("error", err.Error()))
		RespondWithText(w, http.StatusBadRequest, fmt.Sprintf("Failed to removed favorite ad: %v", err))
		return
	}

	h.logger.Info("favorite ad removed", slog.Int("user_id", userID), slog.Int("ad_id", adID))
	RespondWithText(w, http.StatusOK, "Favorite ad was removed successfully from the favorites of the user")
}
