package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/tenant"
	"foodorders/internal/fanout"

	"github.com/labstack/echo/v4"
)

// tenantGetter is the subscription-time plan lookup.
type tenantGetter interface {
	Get(ctx context.Context, id kernel.UUID) (*tenant.Tenant, error)
}

// StreamServer serves the per-tenant realtime event stream over SSE.
// The realtime entitlement is enforced at subscribe time: a FREE tenant is
// refused here, not silently starved of events.
type StreamServer struct {
	hub     *fanout.Hub
	tenants tenantGetter
	logger  *slog.Logger
}

// NewStreamServer creates the SSE endpoint handler.
func NewStreamServer(hub *fanout.Hub, tenants tenantGetter, logger *slog.Logger) *StreamServer {
	return &StreamServer{
		hub:     hub,
		tenants: tenants,
		logger:  logger.With("component", "stream-server"),
	}
}

// RegisterRoutes attaches the stream route to the echo instance.
func (s *StreamServer) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/tenants/:tenant_id/orders/stream", s.Stream)
}

// Stream handles GET /api/v1/tenants/:tenant_id/orders/stream.
// Holds the connection open and forwards the tenant's order events as SSE
// data frames until the client disconnects or the hub drops the connection.
func (s *StreamServer) Stream(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.Param("tenant_id"))
	if err != nil {
		return badRequest(ctx, "invalid tenant id")
	}

	owner, err := s.tenants.Get(ctx.Request().Context(), tenantID)
	if err != nil {
		return domainError(ctx, err)
	}

	if !owner.Plan().Realtime() {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "current plan does not include realtime updates",
		})
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	conn := fanout.NewConnection(tenantID.String())
	s.hub.Register(conn)
	defer s.hub.Unregister(conn)

	s.logger.Info("stream opened", "tenant_id", tenantID.String())
	defer s.logger.Info("stream closed", "tenant_id", tenantID.String())

	reqCtx := ctx.Request().Context()
	for {
		select {
		case <-reqCtx.Done():
			return nil
		case <-conn.Done():
			return nil
		case event := <-conn.Events():
			payload, marshalErr := json.Marshal(event)
			if marshalErr != nil {
				s.logger.Error("marshal event", "error", marshalErr)
				continue
			}
			if _, writeErr := fmt.Fprintf(resp, "data: %s\n\n", payload); writeErr != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
