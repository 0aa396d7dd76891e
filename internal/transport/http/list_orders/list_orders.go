package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

const defaultLimit = 50

type service interface {
	ListOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

var (
	decoder  = newDecoder()
	validate = validator.New()
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

type queryOrdersRequest struct {
	Ids      []int64  `schema:"id"`
	BuyerIds []string `schema:"buyerId"`
	Limit    int      `schema:"limit"  validate:"gte=0,lte=500"`
	Offset   int      `schema:"offset" validate:"gte=0"`
}

func (q *queryOrdersRequest) ToModel() *order.QueryOrdersModel {
	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	return &order.QueryOrdersModel{
		Ids:      q.Ids,
		BuyerIds: q.BuyerIds,
		Limit:    limit,
		Offset:   q.Offset,
	}
}

// ListOrders handles GET /api/orders.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		response.Error(w, r, http.StatusBadRequest, err.Error())
		slog.ErrorContext(r.Context(), "Error decoding request", "error", err)

		return
	}
	if err := validate.Struct(query); err != nil {
		response.Error(w, r, http.StatusBadRequest, err.Error())

		return
	}

	orders, err := service.ListOrders(r.Context(), query.ToModel())
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "failed to list orders")
		slog.ErrorContext(r.Context(), "Error getting orders", "error", err)

		return
	}

	response.JSON(w, r, http.StatusOK, orders)
}
