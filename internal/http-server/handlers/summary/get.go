package summary

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"FarmBot/internal/lib/api/response"
	"FarmBot/internal/lib/sl"
)

// GetSummary returns the weekly summary of the farmer with the given
// Telegram id.
func GetSummary(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.summary")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		telegramId, err := strconv.ParseInt(chi.URLParam(r, "telegram_id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid telegram_id"))
			return
		}

		farmer, err := handler.GetFarmer(r.Context(), telegramId)
		if err != nil {
			logger.Error("failed to load farmer", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to load farmer"))
			return
		}
		if farmer == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Farmer not found"))
			return
		}

		weekly, err := handler.WeeklySummary(r.Context(), farmer.ID)
		if err != nil {
			logger.Error("failed to build summary", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to build summary"))
			return
		}

		render.JSON(w, r, response.Ok(weekly))
	}
}
