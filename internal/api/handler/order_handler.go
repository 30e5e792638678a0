package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ordersdesk/ordersdesk/internal/api/metrics"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerReplayed       = "Idempotent-Replayed"
	ordersLocation       = "/api/v1/Orders"
)

// OrderHandler handles HTTP requests for orders and the dashboard statistics.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /api/v1/Orders.
//
// @Summary      List orders with their client
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   orderResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/v1/Orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderListResponse(orders))
}

// ListByStatus handles GET /api/v1/Orders/filter/:status.
//
// @Summary      List orders with the given status
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  path      string  true  "Pending, Approved or Rejected"
// @Success      200     {array}   orderResponse
// @Failure      400     {object}  errorResponse
// @Router       /api/v1/Orders/filter/{status} [get]
func (h *OrderHandler) ListByStatus(c echo.Context) error {
	orders, err := h.service.ListOrdersByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderListResponse(orders))
}

// Stats handles GET /api/v1/Orders/stats.
//
// @Summary      Dashboard statistics
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "7days (default) or 3months"
// @Success      200     {object}  statsResponse
// @Router       /api/v1/Orders/stats [get]
func (h *OrderHandler) Stats(c echo.Context) error {
	start := time.Now()
	stats, err := h.service.Stats(c.Request().Context(), c.QueryParam("period"))
	if err != nil {
		return err
	}
	metrics.StatsDuration.WithLabelValues(string(stats.Period)).Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

// Get handles GET /api/v1/Orders/:id.
//
// @Summary      Get an order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/Orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Create handles POST /api/v1/Orders.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string        false  "Replays the first result for a repeated key"
// @Param        body             body      orderRequest  true   "Order"
// @Success      201              {object}  orderResponse
// @Failure      400              {object}  errorResponse
// @Router       /api/v1/Orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := toOrderInput(req)
	if err != nil {
		return err
	}

	res, err := h.service.CreateOrder(c.Request().Context(), in, c.Request().Header.Get(headerIdempotencyKey))
	if err != nil {
		return err
	}

	if res.Replayed {
		metrics.IdempotentReplaysTotal.WithLabelValues("orders").Inc()
		c.Response().Header().Set(headerReplayed, "true")
	} else {
		metrics.OrdersCreatedTotal.WithLabelValues(string(res.Value.Status)).Inc()
	}
	c.Response().Header().Set(echo.HeaderLocation, ordersLocation)
	return c.JSON(http.StatusCreated, toOrderResponse(res.Value))
}

// Update handles PUT /api/v1/Orders/:id.
//
// @Summary      Replace an order
// @Tags         orders
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int           true  "Order id"
// @Param        body  body  orderRequest  true  "Order, id must match the path"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/Orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := toOrderInput(req)
	if err != nil {
		return err
	}

	if err := h.service.UpdateOrder(c.Request().Context(), id, in); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/Orders/:id.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path  int  true  "Order id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/Orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteOrder(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
