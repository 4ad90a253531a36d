package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alxtravel/travel-booking-service/internal/dto"
	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/alxtravel/travel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	svc service.ListingService
}

func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

func (h *ListingHandler) RegisterRoutes(e *echo.Echo) {
	listings := e.Group("/api/v1/listings")
	listings.POST("", h.CreateListing)
	listings.GET("", h.ListListings)
	listings.GET("/:id", h.GetListing)
	listings.PUT("/:id", h.UpdateListing)
	listings.DELETE("/:id", h.DeleteListing)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req dto.CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and location are required")
	}
	if req.PricePerNight.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "price_per_night must not be negative")
	}

	listing := &models.Listing{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
	}

	if err := h.svc.CreateListing(c.Request().Context(), listing); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToListingResponse(listing))
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing id")
	}

	listing, err := h.svc.GetListing(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "listing not found")
	}

	return c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	listings, err := h.svc.ListListings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ListingResponse, len(listings))
	for i, l := range listings {
		resp[i] = dto.ToListingResponse(&l)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing id")
	}

	var req dto.UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Location == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and location are required")
	}
	if req.PricePerNight.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "price_per_night must not be negative")
	}

	listing := &models.Listing{
		ID:            uint(id),
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
	}

	if err := h.svc.UpdateListing(c.Request().Context(), listing); err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToListingResponse(listing))
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing id")
	}

	if err := h.svc.DeleteListing(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
