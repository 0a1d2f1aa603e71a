package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/repositories"
	"subtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) CreateSubscription(ctx context.Context, input services.CreateSubscriptionInput, createdBy uuid.UUID) (*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, input, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionService) UpdateSubscription(ctx context.Context, id uuid.UUID, input services.UpdateSubscriptionInput) (*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionService) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionService) ListSubscriptions(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionWithDetails), args.Error(1)
}

func (m *MockSubscriptionService) ListExpiring(ctx context.Context, days int) ([]*models.SubscriptionWithDetails, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionWithDetails), args.Error(1)
}

type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) RecordReminder(ctx context.Context, subscriptionID uuid.UUID, input services.RecordReminderInput) (*models.EmailReminder, error) {
	args := m.Called(ctx, subscriptionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailReminder), args.Error(1)
}

func (m *MockReminderService) ListReminders(ctx context.Context, subscriptionID uuid.UUID) ([]*models.EmailReminder, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EmailReminder), args.Error(1)
}

func newTestHandlers() (*SubscriptionHandlers, *MockSubscriptionService, *MockReminderService) {
	subscriptionService := new(MockSubscriptionService)
	reminderService := new(MockReminderService)
	return NewSubscriptionHandlers(subscriptionService, reminderService), subscriptionService, reminderService
}

func TestListExpiringRejectsBadDaysParam(t *testing.T) {
	h, svc, _ := newTestHandlers()
	e := echo.New()

	for _, days := range []string{"-1", "abc", ""} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/subscriptions/expiring/:days")
		c.SetParamNames("days")
		c.SetParamValues(days)

		require.NoError(t, h.ListExpiring(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%q", days)
	}
	svc.AssertNotCalled(t, "ListExpiring", mock.Anything, mock.Anything)
}

func TestListExpiringReturnsSubscriptions(t *testing.T) {
	h, svc, _ := newTestHandlers()
	e := echo.New()

	detail := &models.SubscriptionWithDetails{
		Subscription: models.Subscription{
			ID:         uuid.New(),
			Status:     models.StatusExpiring,
			ExpiryDate: time.Now().AddDate(0, 0, 5),
		},
		Customer: models.Customer{Name: "Acme", Email: "billing@acme.example"},
		Software: models.Software{Name: "Tally Prime", Brand: "Tally"},
	}
	svc.On("ListExpiring", mock.Anything, 7).Return([]*models.SubscriptionWithDetails{detail}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/subscriptions/expiring/:days")
	c.SetParamNames("days")
	c.SetParamValues("7")

	require.NoError(t, h.ListExpiring(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []models.SubscriptionWithDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, models.StatusExpiring, got[0].Status)
	assert.Equal(t, "Acme", got[0].Customer.Name)
}

func TestGetSubscriptionNotFound(t *testing.T) {
	h, svc, _ := newTestHandlers()
	e := echo.New()

	id := uuid.New()
	svc.On("GetSubscription", mock.Anything, id).Return(nil, repositories.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/subscriptions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.GetSubscription(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSubscriptionRequiresAuthenticatedUser(t *testing.T) {
	h, svc, _ := newTestHandlers()
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateSubscription(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateSubscriptionPassesUserFromContext(t *testing.T) {
	h, svc, _ := newTestHandlers()
	e := echo.New()

	userID := uuid.New()
	body := `{"customer_id":"` + uuid.NewString() + `","software_id":"` + uuid.NewString() + `","sales_price":"1000","start_date":"2025-06-01T00:00:00Z","expiry_date":"2026-06-01T00:00:00Z"}`

	svc.On("CreateSubscription", mock.Anything, mock.AnythingOfType("services.CreateSubscriptionInput"), userID).
		Return(&models.SubscriptionWithDetails{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req = req.WithContext(context.WithValue(req.Context(), common.UserIDKey, userID))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.CreateSubscription(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestDeleteSubscriptionRestrictedIsConflict(t *testing.T) {
	h, svc, _ := newTestHandlers()
	e := echo.New()

	id := uuid.New()
	svc.On("DeleteSubscription", mock.Anything, id).Return(repositories.ErrRestricted)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/subscriptions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.DeleteSubscription(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
