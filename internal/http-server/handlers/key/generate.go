// Package key issues API keys for the admin API and the dashboard
// feed.
package key

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"FarmBot/internal/lib/api/response"
	"FarmBot/internal/lib/sl"
	"FarmBot/internal/lib/validate"
)

// Core defines the key storage operations the handler needs.
type Core interface {
	GenerateApiKey(name string) (string, error)
}

type GenerateRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

// Generate returns the named API key, minting it on first use.
func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.key")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("key storage not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Key storage not available"))
			return
		}

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("name is required"))
			return
		}

		generated, err := handler.GenerateApiKey(req.Name)
		if err != nil {
			logger.Error("failed to generate key", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to generate key"))
			return
		}

		var resp struct {
			Name string `json:"name"`
			Key  string `json:"key"`
		}
		resp.Name = req.Name
		resp.Key = generated

		logger.Debug("api key issued", slog.String("name", req.Name))
		render.JSON(w, r, response.Ok(resp))
	}
}
