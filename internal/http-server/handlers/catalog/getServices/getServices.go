package getServices

import (
	"autoDetailing/internal/lib/api/response"
	"autoDetailing/internal/models"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type ServicesResponse struct {
	response.Response
	Services []models.ServiceInfo `json:"services"`
}

func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.catalog.getServices.New"

		log.Debug("serving catalog", slog.String("op", op))

		render.JSON(w, r, ServicesResponse{
			Response: response.OK(),
			Services: models.Catalog,
		})
	}
}
