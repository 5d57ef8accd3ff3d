// Package http exposes the order lifecycle over a REST API plus an SSE
// stream per tenant. Authentication is out of scope: the gateway in front of
// the service injects the authenticated staff claims as headers, and this
// layer translates them into domain role checks.
package http

import (
	"errors"
	"net/http"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/staff"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/metrics"
	"foodorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Claim headers set by the gateway.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	recordPaymentHandler   commands.RecordPaymentCommandHandler

	// Query handlers
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler

	registry *metrics.Registry
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	registry *metrics.Registry,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		recordPaymentHandler:   recordPaymentHandler,
		getActiveOrdersHandler: getActiveOrdersHandler,
		registry:               registry,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
// Each lifecycle step is its own action endpoint, so role gates and
// transition rules stay explicit per action.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/tenants/:tenant_id/orders", s.CreateOrder)
	api.GET("/tenants/:tenant_id/orders/active", s.GetActiveOrders)

	for action, status := range getActionStatuses() {
		target := status
		api.POST("/orders/:order_id/"+action, func(ctx echo.Context) error {
			return s.transitionOrder(ctx, target)
		})
	}

	api.POST("/orders/:order_id/payment", s.RecordPayment)
}

// getActionStatuses maps action endpoint names to target statuses.
func getActionStatuses() map[string]order.Status {
	return map[string]order.Status{
		"pay":      order.Paid,
		"accept":   order.Accepted,
		"prepare":  order.Preparing,
		"ready":    order.Ready,
		"dispatch": order.OutForDelivery,
		"complete": order.Completed,
		"cancel":   order.Cancelled,
	}
}

// ErrorResponse is the error payload shared by all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewItemRequest is one line item of an order creation request.
type NewItemRequest struct {
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// NewOrderRequest is the order creation payload.
type NewOrderRequest struct {
	Items []NewItemRequest `json:"items"`
}

// PaymentRequest carries a payment-status signal.
type PaymentRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the representation of an order returned by the write
// endpoints. The tenant id travels as restaurant_id, matching the event
// payloads the dashboards consume.
type OrderResponse struct {
	ID            string  `json:"id"`
	TenantID      string  `json:"restaurant_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Total         float64 `json:"total"`
}

// ActiveOrderResponse is one row of the active orders listing.
type ActiveOrderResponse struct {
	ID            string  `json:"id"`
	RequesterID   string  `json:"requester_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Total         float64 `json:"total"`
}

// CreateOrder handles POST /api/v1/tenants/:tenant_id/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.Param("tenant_id"))
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	requesterID, role, err := staffClaims(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, itemReq := range request.Items {
		item, itemErr := order.NewItem(itemReq.ProductName, itemReq.Quantity, itemReq.UnitPriceCents)
		if itemErr != nil {
			return badRequest(ctx, "invalid order item: "+itemErr.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tenantID, requesterID, role, items)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	s.registry.OrdersCreated.Inc()
	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetActiveOrders handles GET /api/v1/tenants/:tenant_id/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.Param("tenant_id"))
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	query, err := queries.NewGetActiveOrdersQuery(tenantID)
	if err != nil {
		return badRequest(ctx, "invalid query: "+err.Error())
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrderResponse{
			ID:            o.ID.String(),
			RequesterID:   o.RequesterID.String(),
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			Total:         float64(o.TotalCents) / 100,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RecordPayment handles POST /api/v1/orders/:order_id/payment.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	_, role, err := staffClaims(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request PaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	paymentStatus, err := order.PaymentStatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, "invalid payment status: "+err.Error())
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, paymentStatus, role)
	if err != nil {
		return badRequest(ctx, "invalid payment data: "+err.Error())
	}

	updated, err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

func (s *Server) transitionOrder(ctx echo.Context, target order.Status) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	_, role, err := staffClaims(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, role)
	if err != nil {
		return badRequest(ctx, "invalid transition data: "+err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	s.registry.OrderTransitions.Inc()
	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// staffClaims extracts the gateway-authenticated staff identity.
func staffClaims(ctx echo.Context) (kernel.UUID, staff.Role, error) {
	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
	if err != nil {
		return kernel.UUID{}, staff.RoleUnknown, errors.New("missing or invalid " + HeaderUserID + " header")
	}

	role, err := staff.RoleFromString(ctx.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return kernel.UUID{}, staff.RoleUnknown, errors.New("missing or invalid " + HeaderUserRole + " header")
	}

	return userID, role, nil
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID().String(),
		TenantID:      o.TenantID().String(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Total:         float64(o.TotalCents()) / 100,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps domain failures onto HTTP statuses. Plan limits surface
// as 402 so clients can distinguish "upgrade required" from plain rejection.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrIllegalTransition):
		status = http.StatusConflict
	case errors.Is(err, staff.ErrRoleNotAllowed):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrOrderLimitExceeded):
		status = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
