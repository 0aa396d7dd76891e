package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/checkout/internal/service/models/address"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/checkout/internal/transport/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, basketID int64, shipTo address.Address) (order.Order, error)
}

var validate = validator.New()

// checkoutRequest represents a checkout request.
type checkoutRequest struct {
	ShipToAddress address.Address `json:"shipToAddress"`
}

// Validate validates the checkout request.
func (r *checkoutRequest) Validate() error {
	return validate.Struct(r)
}

// Checkout handles POST /api/baskets/{basketId}/checkout.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	basketID, err := strconv.ParseInt(chi.URLParam(r, "basketId"), 10, 64)
	if err != nil || basketID <= 0 {
		response.Error(w, r, http.StatusBadRequest, "invalid basket id")

		return
	}

	req := checkoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, err.Error())
		slog.ErrorContext(r.Context(), "Error decoding request body for checkout", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		response.Error(w, r, http.StatusBadRequest, err.Error())
		slog.ErrorContext(r.Context(), "Error validating request body for checkout", "error", err)

		return
	}

	placed, err := service.CreateOrder(r.Context(), basketID, req.ShipToAddress)
	if err != nil {
		status := statusOf(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "checkout failed"
		}
		response.Error(w, r, status, msg)

		return
	}

	response.JSON(w, r, http.StatusCreated, placed)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ordersvc.ErrBasketNotFound):
		return http.StatusNotFound
	case errors.Is(err, ordersvc.ErrEmptyBasket), errors.Is(err, ordersvc.ErrInvalidBasketItem):
		return http.StatusBadRequest
	case errors.Is(err, ordersvc.ErrCatalogItemMissing):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
