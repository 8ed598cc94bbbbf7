// Package http exposes the order engine's REST API on echo.
package http

import (
	"net/http"
	"strconv"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/model/partner"
	"foodorder/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultOrdersPageSize = 20

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	reconcilePayment       commands.ReconcilePaymentCommandHandler
	failPayment            commands.FailPaymentCommandHandler
	registerPartner        commands.RegisterPartnerCommandHandler
	setAvailability        commands.SetPartnerAvailabilityCommandHandler
	removePartner          commands.RemovePartnerCommandHandler

	getOrderHandler      queries.GetOrderQueryHandler
	getUserOrdersHandler queries.GetUserOrdersQueryHandler
	getAllPartners       queries.GetAllPartnersQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	reconcilePayment commands.ReconcilePaymentCommandHandler,
	failPayment commands.FailPaymentCommandHandler,
	registerPartner commands.RegisterPartnerCommandHandler,
	setAvailability commands.SetPartnerAvailabilityCommandHandler,
	removePartner commands.RemovePartnerCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	getAllPartners queries.GetAllPartnersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		cancelOrderHandler:     cancelOrderHandler,
		reconcilePayment:       reconcilePayment,
		failPayment:            failPayment,
		registerPartner:        registerPartner,
		setAvailability:        setAvailability,
		removePartner:          removePartner,
		getOrderHandler:        getOrderHandler,
		getUserOrdersHandler:   getUserOrdersHandler,
		getAllPartners:         getAllPartners,
	}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.TransitionOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/users/:id/orders", s.GetUserOrders)

	api.POST("/payments/verify", s.VerifyPayment)
	api.POST("/payments/failed", s.FailPayment)

	api.POST("/partners", s.RegisterPartner)
	api.GET("/partners", s.GetPartners)
	api.PATCH("/partners/:id/availability", s.SetPartnerAvailability)
	api.DELETE("/partners/:id", s.RemovePartner)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return respondError(ctx, err)
	}

	lines := make([]ports.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, idErr := kernel.UUIDFromString(item.ProductID)
		if idErr != nil {
			return respondError(ctx, idErr)
		}
		lines = append(lines, ports.CartLine{ProductID: productID, Quantity: item.Quantity})
	}

	address, err := order.NewAddress(
		req.Address.FullName,
		req.Address.Phone,
		req.Address.Email,
		req.Address.Street,
		req.Address.City,
		req.Address.PostalCode,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	method, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), userID, lines, address, method)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderTrackingResponse{
		ID:            view.ID.String(),
		UserID:        view.UserID.String(),
		Status:        view.Status,
		PaymentMethod: view.PaymentMethod,
		PaymentStatus: view.PaymentStatus,
		Items:         view.Items,
		History:       view.History,
		Subtotal:      view.Subtotal,
		DeliveryFee:   view.DeliveryFee,
		Tax:           view.Tax,
		Total:         view.Total,
		Partner:       view.Partner,
		CancelReason:  view.CancelReason,
		CreatedAt:     view.CreatedAt,
		DeliveredAt:   view.DeliveredAt,
		CanCancel:     view.CanCancel,
	})
}

// GetUserOrders handles GET /api/v1/users/:id/orders.
func (s *Server) GetUserOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	limit := defaultOrdersPageSize
	if raw := ctx.QueryParam("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			limit = parsed
		}
	}
	offset := 0
	if raw := ctx.QueryParam("offset"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			offset = parsed
		}
	}

	query, err := queries.NewGetUserOrdersQuery(userID, limit, offset)
	if err != nil {
		return respondError(ctx, err)
	}

	page, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderSummaryResponse, 0, len(page))
	for _, row := range page {
		response = append(response, OrderSummaryResponse{
			ID:            row.ID.String(),
			Status:        row.Status,
			PaymentMethod: row.PaymentMethod,
			Total:         row.Total,
			CreatedAt:     row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, newStatus, req.Note)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req CancelOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(cancelled))
}

// VerifyPayment handles POST /api/v1/payments/verify.
func (s *Server) VerifyPayment(ctx echo.Context) error {
	var req VerifyPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewReconcilePaymentCommand(req.ProviderOrderRef, req.PaymentRef, req.Signature)
	if err != nil {
		return respondError(ctx, err)
	}

	reconciled, err := s.reconcilePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(reconciled))
}

// FailPayment handles POST /api/v1/payments/failed.
func (s *Server) FailPayment(ctx echo.Context) error {
	var req FailPaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewFailPaymentCommand(req.ProviderOrderRef, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	failed, err := s.failPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(failed))
}

// RegisterPartner handles POST /api/v1/partners.
func (s *Server) RegisterPartner(ctx echo.Context) error {
	var req RegisterPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRegisterPartnerCommand(
		kernel.NewUUID(),
		req.Name,
		req.Phone,
		partner.VehicleType(req.VehicleType),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	registered, err := s.registerPartner.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, partnerToResponse(registered))
}

// GetPartners handles GET /api/v1/partners.
func (s *Server) GetPartners(ctx echo.Context) error {
	query := queries.NewGetAllPartnersQuery()

	partners, err := s.getAllPartners.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PartnerResponse, 0, len(partners))
	for _, p := range partners {
		response = append(response, PartnerResponse{
			ID:                p.ID.String(),
			Name:              p.Name,
			Phone:             p.Phone,
			VehicleType:       p.VehicleType,
			IsAvailable:       p.IsAvailable,
			CurrentDeliveries: p.CurrentDeliveries,
			TotalDeliveries:   p.TotalDeliveries,
			Rating:            p.Rating,
			LastAssignedAt:    p.LastAssignedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetPartnerAvailability handles PATCH /api/v1/partners/:id/availability.
func (s *Server) SetPartnerAvailability(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req SetAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewSetPartnerAvailabilityCommand(partnerID, req.Available)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.setAvailability.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, partnerToResponse(updated))
}

// RemovePartner handles DELETE /api/v1/partners/:id.
func (s *Server) RemovePartner(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRemovePartnerCommand(partnerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.removePartner.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderToResponse(o *order.Order) OrderResponse {
	pricing := o.Pricing()
	return OrderResponse{
		ID:            o.ID().String(),
		UserID:        o.UserID().String(),
		Status:        o.Status().String(),
		PaymentMethod: o.PaymentMethod().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Subtotal:      pricing.Subtotal().Amount(),
		DeliveryFee:   pricing.DeliveryFee().Amount(),
		Tax:           pricing.Tax().Amount(),
		Total:         pricing.Total().Amount(),
		CancelReason:  o.CancelReason(),
		CreatedAt:     o.CreatedAt(),
		DeliveredAt:   o.DeliveredAt(),
	}
}

func partnerToResponse(p *partner.DeliveryPartner) PartnerResponse {
	return PartnerResponse{
		ID:                p.ID().String(),
		Name:              p.Name(),
		Phone:             p.Phone(),
		VehicleType:       string(p.VehicleType()),
		IsAvailable:       p.IsAvailable(),
		CurrentDeliveries: p.CurrentDeliveries(),
		TotalDeliveries:   p.TotalDeliveries(),
		Rating:            p.Rating(),
		LastAssignedAt:    p.LastAssignedAt(),
	}
}
