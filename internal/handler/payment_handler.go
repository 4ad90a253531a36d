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

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/bookings/:id/pay", h.InitiatePayment)

	payments := e.Group("/api/v1/payments")
	payments.GET("/verify/:booking_id", h.VerifyPayment)
	payments.GET("/verified", h.ListVerifiedPayments)

	e.POST("/api/v1/email/test-send", h.SendTestEmail)
}

func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must not be negative")
	}

	payment, checkoutURL, err := h.svc.InitiatePayment(c.Request().Context(), uint(bookingID), req.UserID, req.Amount, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPaymentExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPaymentInitiation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.InitiatePaymentResponse{
		Payment:     dto.ToPaymentResponse(payment),
		CheckoutURL: checkoutURL,
	})
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	payment, err := h.svc.VerifyPayment(c.Request().Context(), uint(bookingID), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPaymentVerification):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if payment.Status == models.PaymentFailed {
		return c.JSON(http.StatusBadRequest, dto.VerifyPaymentResponse{
			Status:  "failed",
			Payment: dto.ToPaymentResponse(payment),
		})
	}

	return c.JSON(http.StatusOK, dto.VerifyPaymentResponse{
		Status:  "completed",
		Payment: dto.ToPaymentResponse(payment),
	})
}

func (h *PaymentHandler) ListVerifiedPayments(c echo.Context) error {
	payments, err := h.svc.ListVerifiedPayments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = dto.ToPaymentResponse(&p)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) SendTestEmail(c echo.Context) error {
	var req dto.SendTestEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id is required")
	}

	if err := h.svc.QueueConfirmationEmail(req.BookingID, req.ToEmail); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "queued"})
}
