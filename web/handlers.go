package web

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"mama-doner/models"
	"mama-doner/services"
)

type Handler struct {
	Lifecycle *services.Lifecycle
	Log       *slog.Logger
	IndexPath string // defaults to static/index.html
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateInvoiceRequest struct {
	Cart []models.CartItem `json:"cart"`
}

type CreateInvoiceResponse struct {
	InvoiceLink string `json:"invoice_link"`
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/create-invoice", h.createInvoice)
	e.GET("/api/menu", h.getMenu)
	e.GET("/api/categories", h.getCategories)
	e.GET("/", h.index)
	e.Static("/static", "static")
}

func (h *Handler) createInvoice(c echo.Context) error {
	var req CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	link, err := h.Lifecycle.RequestInvoice(c.Request().Context(), req.Cart)
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Cart is empty or has no valid items"})
	case errors.Is(err, services.ErrInvoiceIssuer):
		h.Log.Error("invoice issuer", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	case err != nil:
		h.Log.Error("create invoice", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(http.StatusOK, CreateInvoiceResponse{InvoiceLink: link})
}

func (h *Handler) getMenu(c echo.Context) error {
	menu, err := h.Lifecycle.Menu.ListActive(c.Request().Context())
	if err != nil {
		h.Log.Error("list menu", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(http.StatusOK, menu)
}

func (h *Handler) getCategories(c echo.Context) error {
	categories, err := h.Lifecycle.Menu.ListCategories(c.Request().Context())
	if err != nil {
		h.Log.Error("list categories", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) index(c echo.Context) error {
	path := h.IndexPath
	if path == "" {
		path = "static/index.html"
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return c.String(http.StatusNotFound, "index.html not found")
	}
	return c.HTMLBlob(http.StatusOK, content)
}
