package getorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
)

type service interface {
	GetOrder(ctx context.Context, id int64) (*order.Order, error)
}

// GetOrder handles GET /api/orders/{id}.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, r, http.StatusBadRequest, "invalid order id")

		return
	}

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "failed to get order")
		slog.ErrorContext(r.Context(), "Error getting order", "order_id", id, "error", err)

		return
	}
	if o == nil {
		response.Error(w, r, http.StatusNotFound, "order not found")

		return
	}

	response.JSON(w, r, http.StatusOK, o)
}
