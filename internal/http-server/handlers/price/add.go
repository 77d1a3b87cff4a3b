package price

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"FarmBot/entity"
	"FarmBot/internal/lib/api/response"
	"FarmBot/internal/lib/dates"
	"FarmBot/internal/lib/sl"
	"FarmBot/internal/lib/validate"
)

type AddRequest struct {
	CropName   string  `json:"crop_name" validate:"required"`
	PriceDate  string  `json:"price_date"`
	PricePerKg float64 `json:"price_per_kg" validate:"required,gt=0"`
	Source     string  `json:"source"`
}

// AddPrice records a market price. The date defaults to today.
func AddPrice(log *slog.Logger, handler Core, events EventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.price")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req AddRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("crop_name and a positive price_per_kg are required"))
			return
		}

		priceDate := entity.Today()
		if req.PriceDate != "" {
			d, err := dates.Parse(req.PriceDate)
			if err != nil {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Invalid price_date"))
				return
			}
			priceDate = d
		}

		created, err := handler.CreateMarketPrice(r.Context(), &entity.MarketPrice{
			CropName:   req.CropName,
			PriceDate:  priceDate,
			PricePerKg: req.PricePerKg,
			Source:     req.Source,
		})
		if err != nil {
			logger.Error("failed to create price", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to create price"))
			return
		}
		if events != nil {
			events.PriceAdded(*created)
		}

		logger.Debug("price added", slog.String("crop", created.CropName))
		render.JSON(w, r, response.Ok(created))
	}
}
