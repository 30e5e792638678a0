package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ordersdesk/ordersdesk/internal/api/metrics"
	"github.com/ordersdesk/ordersdesk/internal/core/ports"
)

const clientsLocation = "/api/v1/Clients"

// ClientHandler handles HTTP requests for clients.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /api/v1/Clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  clientResponse
// @Router       /api/v1/Clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientListResponse(clients))
}

// Get handles GET /api/v1/Clients/:id.
//
// @Summary      Get a client by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client id"
// @Success      200  {object}  clientResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/Clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	client, err := h.service.GetClient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Create handles POST /api/v1/Clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string         false  "Replays the first result for a repeated key"
// @Param        body             body      clientRequest  true   "Client"
// @Success      201              {object}  clientResponse
// @Failure      400              {object}  errorResponse
// @Router       /api/v1/Clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.CreateClient(c.Request().Context(), toClientInput(req), c.Request().Header.Get(headerIdempotencyKey))
	if err != nil {
		return err
	}
	if res.Replayed {
		metrics.IdempotentReplaysTotal.WithLabelValues("clients").Inc()
		c.Response().Header().Set(headerReplayed, "true")
	}
	c.Response().Header().Set(echo.HeaderLocation, clientsLocation)
	return c.JSON(http.StatusCreated, toClientResponse(res.Value))
}

// Update handles PUT /api/v1/Clients/:id.
//
// @Summary      Replace a client
// @Tags         clients
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int            true  "Client id"
// @Param        body  body  clientRequest  true  "Client, id must match the path"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/Clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateClient(c.Request().Context(), id, toClientInput(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/Clients/:id. Orders that reference the
// client are kept.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        id   path  int  true  "Client id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/Clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteClient(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
