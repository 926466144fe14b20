// Package http exposes the CRM over a JSON API built on echo. Handlers
// translate requests into commands and queries; all domain decisions stay in
// the application layer.
package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"crm/internal/core/application/usecases/commands"
	"crm/internal/core/application/usecases/queries"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
	"crm/internal/core/domain/model/payment"
	"crm/internal/core/domain/model/route"
	"crm/internal/core/ports"
	"crm/internal/pkg/errs"
)

// Deps carries everything the HTTP server delegates to.
type Deps struct {
	CreateClient          commands.CreateClientCommandHandler
	CreateCourier         commands.CreateCourierCommandHandler
	CreateOrder           commands.CreateOrderCommandHandler
	ChangeOrderStatus     commands.ChangeOrderStatusCommandHandler
	UpdateCourierLocation commands.UpdateCourierLocationCommandHandler
	ProcessPaymentWebhook commands.ProcessPaymentWebhookCommandHandler
	ProcessCashPayment    commands.ProcessCashPaymentCommandHandler
	RefundPayment         commands.RefundPaymentCommandHandler
	PlanRoute             commands.PlanRouteCommandHandler
	StartRoute            commands.StartRouteCommandHandler
	CompleteRoute         commands.CompleteRouteCommandHandler
	SupportChat           commands.SupportChatCommandHandler

	GetAllCouriers       queries.GetAllCouriersQueryHandler
	GetUndeliveredOrders queries.GetUndeliveredOrdersQueryHandler
	GetCourierTrack      queries.GetCourierTrackQueryHandler
	GetRoute             queries.GetRouteQueryHandler

	Geocoder ports.Geocoder

	// WebhookSecret signs payment gateway callbacks (hex HMAC-SHA256 of
	// the raw body in the X-Webhook-Signature header).
	WebhookSecret string
	// CourierAPIKey guards the GPS push endpoint via the X-API-Key header.
	CourierAPIKey string
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	deps Deps
}

// NewServer creates the HTTP server.
func NewServer(deps Deps) *Server {
	return &Server{deps: deps}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/clients", s.CreateClient)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/undelivered", s.GetUndeliveredOrders)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/location", s.PushCourierLocation)
	api.GET("/couriers/:id/track", s.GetCourierTrack)
	api.GET("/geocode", s.Geocode)
	api.POST("/routes", s.PlanRoute)
	api.GET("/routes/:id", s.GetRoute)
	api.POST("/routes/:id/start", s.StartRoute)
	api.POST("/routes/:id/complete", s.CompleteRoute)
	api.POST("/payments/webhook", s.PaymentWebhook)
	api.POST("/payments/cash", s.CashPayment)
	api.POST("/payments/:id/refund", s.RefundPayment)
	api.POST("/support/chat", s.SupportChat)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateClient handles POST /api/v1/clients.
func (s *Server) CreateClient(ctx echo.Context) error {
	var req CreateClientRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	email := ""
	if req.Email != nil {
		email = string(*req.Email)
	}

	clientID := kernel.NewUUID()
	cmd, err := commands.NewCreateClientCommand(clientID, req.Name, req.Phone, email, req.Address)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.CreateClient.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateClientResponse{ID: clientID.String()})
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, req.Phone, req.Transport)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateCourierResponse{ID: courierID.String()})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return badRequest(ctx, "invalid client_id")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, clientID, req.Product, req.Quantity,
		req.Address, req.Priority, req.PaymentMethod,
		req.BasePrice, req.DeliveryFee, req.Discount, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.deps.GetAllCouriers.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]CourierResponse, 0, len(couriers))
	for _, courier := range couriers {
		item := CourierResponse{
			ID:        courier.ID.String(),
			Name:      courier.Name,
			Phone:     courier.Phone,
			Transport: courier.Transport,
			Available: courier.Available,
			LocatedAt: courier.LocatedAt,
		}
		if courier.Location != nil {
			item.Location = &GeoPointDTO{
				Latitude:  courier.Location.Latitude(),
				Longitude: courier.Location.Longitude(),
			}
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUndeliveredOrders handles GET /api/v1/orders/undelivered.
func (s *Server) GetUndeliveredOrders(ctx echo.Context) error {
	orders, err := s.deps.GetUndeliveredOrders.Handle(ctx.Request().Context(),
		queries.NewGetUndeliveredOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, ord := range orders {
		item := OrderResponse{
			ID:        ord.ID.String(),
			ClientID:  ord.ClientID.String(),
			Product:   ord.Product,
			Quantity:  ord.Quantity,
			Address:   ord.Address,
			Status:    ord.Status,
			Priority:  ord.Priority,
			CreatedAt: ord.CreatedAt,
		}
		if ord.CourierID != nil {
			id := ord.CourierID.String()
			item.CourierID = &id
		}
		if ord.Location != nil {
			item.Location = &GeoPointDTO{
				Latitude:  ord.Location.Latitude(),
				Longitude: ord.Location.Longitude(),
			}
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// PushCourierLocation handles POST /api/v1/couriers/location. The endpoint
// is called by courier devices and is guarded by a shared API key.
func (s *Server) PushCourierLocation(ctx echo.Context) error {
	provided := ctx.Request().Header.Get("X-API-Key")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.deps.CourierAPIKey)) != 1 {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "invalid api key",
		})
	}

	var req CourierLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	recordedAt := time.Now()
	if req.RecordedAt != "" {
		if recordedAt, err = time.Parse(time.RFC3339, req.RecordedAt); err != nil {
			return badRequest(ctx, "invalid recorded_at")
		}
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID,
		req.Latitude, req.Longitude, req.AccuracyM, req.SpeedKmh, req.BearingDeg, recordedAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.UpdateCourierLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCourierTrack handles GET /api/v1/couriers/:id/track. The window
// defaults to the last hour.
func (s *Server) GetCourierTrack(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	now := time.Now()
	from := now.Add(-time.Hour)
	to := now
	if raw := ctx.QueryParam("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			return badRequest(ctx, "invalid from")
		}
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			return badRequest(ctx, "invalid to")
		}
	}

	query, err := queries.NewGetCourierTrackQuery(courierID, from, to)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	track, err := s.deps.GetCourierTrack.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]TrackPointResponse, 0, len(track))
	for _, ping := range track {
		response = append(response, TrackPointResponse{
			Latitude:   ping.Point.Latitude(),
			Longitude:  ping.Point.Longitude(),
			AccuracyM:  ping.AccuracyM,
			SpeedKmh:   ping.SpeedKmh,
			BearingDeg: ping.BearingDeg,
			RecordedAt: ping.RecordedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// Geocode handles GET /api/v1/geocode?address=.
func (s *Server) Geocode(ctx echo.Context) error {
	address := ctx.QueryParam("address")
	if address == "" {
		return badRequest(ctx, "address is required")
	}

	point, err := s.deps.Geocoder.Geocode(ctx.Request().Context(), address)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, GeocodeResponse{
		Latitude:  point.Latitude(),
		Longitude: point.Longitude(),
	})
}

// PlanRoute handles POST /api/v1/routes.
func (s *Server) PlanRoute(ctx echo.Context) error {
	var req PlanRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier_id")
	}

	routeID := kernel.NewUUID()
	cmd, err := commands.NewPlanRouteCommand(routeID, courierID, req.Name)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.PlanRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PlanRouteResponse{ID: routeID.String()})
}

// GetRoute handles GET /api/v1/routes/:id.
func (s *Server) GetRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	query, err := queries.NewGetRouteQuery(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	found, err := s.deps.GetRoute.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	stops := make([]RouteStopResponse, 0, len(found.Stops))
	for _, stop := range found.Stops {
		stops = append(stops, RouteStopResponse{
			OrderID:   stop.OrderID.String(),
			Sequence:  stop.Sequence,
			Latitude:  stop.Point.Latitude(),
			Longitude: stop.Point.Longitude(),
			ETA:       stop.ETA,
		})
	}

	return ctx.JSON(http.StatusOK, RouteResponse{
		ID:              found.ID.String(),
		CourierID:       found.CourierID.String(),
		Name:            found.Name,
		Status:          found.Status,
		DistanceKm:      found.DistanceKm,
		DurationSeconds: int64(found.Duration.Seconds()),
		CreatedAt:       found.CreatedAt,
		StartedAt:       found.StartedAt,
		CompletedAt:     found.CompletedAt,
		Stops:           stops,
	})
}

// StartRoute handles POST /api/v1/routes/:id/start.
func (s *Server) StartRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	cmd, err := commands.NewStartRouteCommand(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.StartRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteRoute handles POST /api/v1/routes/:id/complete.
func (s *Server) CompleteRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	cmd, err := commands.NewCompleteRouteCommand(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.CompleteRoute.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PaymentWebhook handles POST /api/v1/payments/webhook. The raw body is
// authenticated with a hex HMAC-SHA256 signature before anything is parsed;
// an invalid signature mutates no state.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return badRequest(ctx, "unreadable body")
	}

	if !s.verifyWebhookSignature(body, ctx.Request().Header.Get("X-Webhook-Signature")) {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "invalid signature",
		})
	}

	var req PaymentWebhookRequest
	if err = json.Unmarshal(body, &req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order_id")
	}

	cmd, err := commands.NewProcessPaymentWebhookCommand(orderID, req.TransactionID, req.Status, body)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.ProcessPaymentWebhook.Handle(ctx.Request().Context(), cmd); err != nil {
		// Unknown payments are acknowledged so the gateway stops retrying.
		if errors.Is(err, commands.ErrPaymentNotFound) {
			return ctx.JSON(http.StatusOK, PaymentWebhookResponse{Status: "ignored"})
		}
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PaymentWebhookResponse{Status: "ok"})
}

// CashPayment handles POST /api/v1/payments/cash.
func (s *Server) CashPayment(ctx echo.Context) error {
	var req CashPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order_id")
	}

	cmd, err := commands.NewProcessCashPaymentCommand(orderID, req.ReceivedMinor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.ProcessCashPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefundPayment handles POST /api/v1/payments/:id/refund.
func (s *Server) RefundPayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid payment id")
	}

	cmd, err := commands.NewRefundPaymentCommand(paymentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.deps.RefundPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SupportChat handles POST /api/v1/support/chat.
func (s *Server) SupportChat(ctx echo.Context) error {
	var req SupportChatRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var clientID *kernel.UUID
	if req.ClientID != "" {
		parsed, err := kernel.UUIDFromString(req.ClientID)
		if err != nil {
			return badRequest(ctx, "invalid client_id")
		}
		clientID = &parsed
	}

	cmd, err := commands.NewSupportChatCommand(clientID, req.Question)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	reply, err := s.deps.SupportChat.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SupportChatResponse{Reply: reply})
}

func (s *Server) verifyWebhookSignature(body []byte, signatureHex string) bool {
	provided, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.deps.WebhookSecret))
	mac.Write(body)
	return hmac.Equal(provided, mac.Sum(nil))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps application errors onto HTTP status codes.
func (s *Server) fail(ctx echo.Context, err error) error {
	var orderTransition *order.InvalidTransitionError
	var paymentTransition *payment.InvalidTransitionError
	var routeTransition *route.InvalidTransitionError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &orderTransition),
		errors.As(err, &paymentTransition),
		errors.As(err, &routeTransition):
		status = http.StatusConflict
	case errors.Is(err, commands.ErrClientAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
