package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alxtravel/travel-booking-service/internal/dto"
	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/alxtravel/travel-booking-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Mock ListingService ---

type mockListingService struct {
	createFn func(ctx context.Context, listing *models.Listing) error
	getFn    func(ctx context.Context, id uint) (*models.Listing, error)
	listFn   func(ctx context.Context) ([]models.Listing, error)
	updateFn func(ctx context.Context, listing *models.Listing) error
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockListingService) CreateListing(ctx context.Context, listing *models.Listing) error {
	return m.createFn(ctx, listing)
}
func (m *mockListingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	return m.getFn(ctx, id)
}
func (m *mockListingService) ListListings(ctx context.Context) ([]models.Listing, error) {
	return m.listFn(ctx)
}
func (m *mockListingService) UpdateListing(ctx context.Context, listing *models.Listing) error {
	return m.updateFn(ctx, listing)
}
func (m *mockListingService) DeleteListing(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

// --- Tests ---

func TestCreateListing_Handler_Success(t *testing.T) {
	svc := &mockListingService{
		createFn: func(ctx context.Context, listing *models.Listing) error {
			listing.ID = 1
			return nil
		},
	}

	e := echo.New()
	body := `{"title":"Lakeside Cabin","description":"Two-bed cabin by the lake","location":"Bahir Dar","price_per_night":"150"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewListingHandler(svc)
	err := h.CreateListing(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.ListingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "Lakeside Cabin", resp.Title)
	assert.Equal(t, "$150.00 per night", resp.PriceDisplay)
}

func TestCreateListing_Handler_MissingTitle(t *testing.T) {
	e := echo.New()
	body := `{"location":"Bahir Dar","price_per_night":"150"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewListingHandler(&mockListingService{})
	err := h.CreateListing(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetListing_Handler_NotFound(t *testing.T) {
	svc := &mockListingService{
		getFn: func(ctx context.Context, id uint) (*models.Listing, error) {
			return nil, service.ErrListingNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewListingHandler(svc)
	err := h.GetListing(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteListing_Handler_Success(t *testing.T) {
	svc := &mockListingService{
		deleteFn: func(ctx context.Context, id uint) error { return nil },
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/listings/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewListingHandler(svc)
	err := h.DeleteListing(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListListings_Handler_Success(t *testing.T) {
	svc := &mockListingService{
		listFn: func(ctx context.Context) ([]models.Listing, error) {
			return []models.Listing{
				{ID: 1, Title: "Cabin A", PricePerNight: decimal.NewFromInt(100)},
				{ID: 2, Title: "Cabin B", PricePerNight: decimal.NewFromInt(200)},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/listings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewListingHandler(svc)
	err := h.ListListings(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.ListingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
