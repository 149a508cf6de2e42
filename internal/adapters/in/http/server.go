package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/item"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server adapts HTTP requests to the ordering use cases.
type Server struct {
	// Command handlers
	placeOrderHandler     commands.PlaceOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	registerMemberHandler commands.RegisterMemberCommandHandler
	addItemHandler        commands.AddItemCommandHandler

	// Query handlers
	listOrdersHandler queries.ListOrdersQueryHandler

	metricsHandler http.Handler
	logger         *logger.Logger
}

func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	registerMemberHandler commands.RegisterMemberCommandHandler,
	addItemHandler commands.AddItemCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	metricsHandler http.Handler,
	log *logger.Logger,
) *Server {
	return &Server{
		placeOrderHandler:     placeOrderHandler,
		cancelOrderHandler:    cancelOrderHandler,
		registerMemberHandler: registerMemberHandler,
		addItemHandler:        addItemHandler,
		listOrdersHandler:     listOrdersHandler,
		metricsHandler:        metricsHandler,
		logger:                log.With("component", "http"),
	}
}

// NewEcho returns an echo instance with every route of s registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String())
			return nil
		},
	}))

	e.GET("/health", s.Health)
	if s.metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(s.metricsHandler))
	}

	api := e.Group("/api")
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/members", s.RegisterMember)
	api.POST("/items", s.AddItem)
	return e
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListOrders handles GET /api/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	strategy, err := queries.ParseStrategy(ctx.QueryParam("strategy"))
	if err != nil {
		return s.badRequest(ctx, "Invalid strategy", err)
	}
	filter, err := parseFilter(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid filter", err)
	}
	page, err := parsePage(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid page", err)
	}

	query, err := queries.NewListOrdersQuery(filter, strategy, page)
	if err != nil {
		return s.badRequest(ctx, "Invalid order listing", err)
	}

	resp, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to list orders", err)
	}

	body := ListOrdersResponse{
		Strategy:   resp.Strategy.String(),
		QueryCount: resp.QueryCount,
	}
	if resp.Strategy.ReturnsEntities() {
		body.Orders = resp.OrderDtos
	} else {
		body.Orders = resp.OrderQueryDtos
	}
	return ctx.JSON(http.StatusOK, body)
}

// PlaceOrder handles POST /api/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	memberID, err := kernel.UUIDFromString(req.MemberID)
	if err != nil {
		return s.badRequest(ctx, "Invalid member id", err)
	}

	var cmd commands.PlaceOrderCommand
	if len(req.Lines) > 0 {
		lines := make([]commands.OrderLine, 0, len(req.Lines))
		for _, l := range req.Lines {
			itemID, parseErr := kernel.UUIDFromString(l.ItemID)
			if parseErr != nil {
				return s.badRequest(ctx, "Invalid item id", parseErr)
			}
			lines = append(lines, commands.OrderLine{ItemID: itemID, Count: l.Count})
		}
		cmd, err = commands.NewPlaceOrderCommandWithLines(memberID, lines)
	} else {
		itemID, parseErr := kernel.UUIDFromString(req.ItemID)
		if parseErr != nil {
			return s.badRequest(ctx, "Invalid item id", parseErr)
		}
		cmd, err = commands.NewPlaceOrderCommand(memberID, itemID, req.Count)
	}
	if err != nil {
		return s.badRequest(ctx, "Invalid order data", err)
	}

	orderID, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to place order", err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID})
}

// CancelOrder handles POST /api/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id", err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id", err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "Failed to cancel order", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterMember handles POST /api/members.
func (s *Server) RegisterMember(ctx echo.Context) error {
	var req RegisterMemberRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	cmd, err := commands.NewRegisterMemberCommand(req.Name, req.City, req.Street, req.Zipcode)
	if err != nil {
		return s.badRequest(ctx, "Invalid member data", err)
	}

	memberID, err := s.registerMemberHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to register member", err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: memberID})
}

// AddItem handles POST /api/items.
func (s *Server) AddItem(ctx echo.Context) error {
	var req AddItemRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body", err)
	}

	variant, err := req.variant()
	if err != nil {
		return s.badRequest(ctx, "Invalid item kind", err)
	}

	cmd, err := commands.NewAddItemCommand(req.Name, req.Price, req.StockQuantity, variant)
	if err != nil {
		return s.badRequest(ctx, "Invalid item data", err)
	}

	itemID, err := s.addItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to add item", err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: itemID})
}

func (s *Server) badRequest(ctx echo.Context, message string, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message + ": " + err.Error(),
	})
}

// fail maps a use case error to a status. Unexpected errors are logged and
// their text is not returned.
func (s *Server) fail(ctx echo.Context, message string, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(message, "error", err, "uri", ctx.Request().RequestURI)
		return ctx.JSON(status, Error{Code: status, Message: message})
	}
	return ctx.JSON(status, Error{Code: status, Message: message + ": " + err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrInsufficientStock), errors.Is(err, errs.ErrIllegalState):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrLoaderUsage),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseFilter(ctx echo.Context) (ports.OrderFilter, error) {
	filter := ports.OrderFilter{MemberName: ctx.QueryParam("memberName")}

	if raw := ctx.QueryParam("memberId"); raw != "" {
		memberID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ports.OrderFilter{}, err
		}
		filter.MemberID = &memberID
	}
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.ParseStatus(strings.ToUpper(raw))
		if err != nil {
			return ports.OrderFilter{}, err
		}
		filter.Status = &status
	}
	switch ctx.QueryParam("sort") {
	case "", "id":
		filter.Sort = ports.SortByID
	case "orderDate":
		filter.Sort = ports.SortByOrderDateDesc
	default:
		return ports.OrderFilter{}, errs.NewValueIsInvalidError("sort")
	}
	return filter, nil
}

// parsePage returns nil when neither offset nor limit is given.
func parsePage(ctx echo.Context) (*ports.Page, error) {
	rawOffset, rawLimit := ctx.QueryParam("offset"), ctx.QueryParam("limit")
	if rawOffset == "" && rawLimit == "" {
		return nil, nil
	}

	page := &ports.Page{Limit: queries.MaxPageLimit}
	if rawOffset != "" {
		offset, err := strconv.Atoi(rawOffset)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("offset", err)
		}
		page.Offset = offset
	}
	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("limit", err)
		}
		page.Limit = limit
	}
	return page, nil
}

func (r AddItemRequest) variant() (item.Variant, error) {
	kind, err := item.ParseKind(strings.ToUpper(r.Kind))
	if err != nil {
		return nil, err
	}
	switch kind {
	case item.AlbumKind:
		return item.Album{Artist: r.Artist, Etc: r.Etc}, nil
	case item.MovieKind:
		return item.Movie{Director: r.Director, Actor: r.Actor}, nil
	default:
		return item.Book{Author: r.Author, ISBN: r.ISBN}, nil
	}
}
