package price

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"FarmBot/internal/lib/api/response"
	"FarmBot/internal/lib/sl"
)

// ListPrices returns the latest prices, optionally narrowed by the
// "crop" query parameter. "limit" caps the rows, ten by default.
func ListPrices(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.price")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Invalid limit"))
				return
			}
			limit = n
		}

		prices, err := handler.ListMarketPrices(r.Context(), r.URL.Query().Get("crop"), limit)
		if err != nil {
			logger.Error("failed to list prices", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to list prices"))
			return
		}

		render.JSON(w, r, response.Ok(prices))
	}
}
