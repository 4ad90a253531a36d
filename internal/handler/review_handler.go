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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/listings/:id/reviews", h.CreateReview)
	e.GET("/api/v1/listings/:id/reviews", h.ListReviews)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing id")
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	review := &models.Review{
		UserID:    req.UserID,
		ListingID: uint(listingID),
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := h.svc.CreateReview(c.Request().Context(), review); err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
}

func (h *ReviewHandler) ListReviews(c echo.Context) error {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid listing id")
	}

	reviews, err := h.svc.ListReviews(c.Request().Context(), uint(listingID))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReviewResponse, len(reviews))
	for i, r := range reviews {
		resp[i] = dto.ToReviewResponse(&r)
	}

	return c.JSON(http.StatusOK, resp)
}
