package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"property-booking/internal/dto/request"
	"property-booking/internal/dto/response"
	"property-booking/internal/presenter"
	"property-booking/internal/relay"
	"property-booking/pkg/database"
	"property-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockLeadService struct{ mock.Mock }

func (m *mockLeadService) Submit(ctx context.Context, form string, payload map[string]any) error {
	return m.Called(ctx, form, payload).Error(0)
}

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}
func (m *mockBookingService) ListBookings(ctx context.Context, userID string, viewer presenter.Viewer) presenter.Table {
	return m.Called(ctx, userID, viewer).Get(0).(presenter.Table)
}
func (m *mockBookingService) UpdateStatus(ctx context.Context, userID, role, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, userID, role, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response.BookingResponse), args.Error(1)
}

func decodeRelay(t *testing.T, rec *httptest.ResponseRecorder) utils.RelayResponse {
	t.Helper()
	var body utils.RelayResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRelayHandler_Success(t *testing.T) {
	svc := new(mockLeadService)
	h := NewRelayHandler(svc, zap.NewNop())

	routes := map[string]struct {
		form    string
		handler http.HandlerFunc
	}{
		"/api/ghl/contact":         {relay.FormContact, h.Contact},
		"/api/ghl/landlord-lead":   {relay.FormLandlordLead, h.LandlordLead},
		"/api/ghl/contractor-lead": {relay.FormContractorLead, h.ContractorLead},
	}

	for path, route := range routes {
		t.Run(path, func(t *testing.T) {
			svc.On("Submit", mock.Anything, route.form, map[string]any{"email": "a@b.c"}).Return(nil).Once()

			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"email":"a@b.c"}`))
			rec := httptest.NewRecorder()
			route.handler(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			body := decodeRelay(t, rec)
			assert.True(t, body.Success)
			assert.Equal(t, relaySuccessMessage, body.Message)
			assert.Empty(t, body.Error)
		})
	}
	svc.AssertExpectations(t)
}

func TestRelayHandler_UpstreamFailure(t *testing.T) {
	svc := new(mockLeadService)
	h := NewRelayHandler(svc, zap.NewNop())

	svc.On("Submit", mock.Anything, relay.FormLandlordLead, mock.Anything).
		Return(errors.New("forward landlord_lead submission: relay responded with http 502"))

	req := httptest.NewRequest(http.MethodPost, "/api/ghl/landlord-lead", strings.NewReader(`{"name":"Lee"}`))
	rec := httptest.NewRecorder()
	h.LandlordLead(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeRelay(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, relayFailureMessage, body.Message)
	assert.Contains(t, body.Error, "http 502")
}

func TestRelayHandler_BadJSON(t *testing.T) {
	svc := new(mockLeadService)
	h := NewRelayHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/ghl/contact", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.Contact(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, decodeRelay(t, rec).Success)
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func withUser(r *http.Request, role string) (*http.Request, uuid.UUID) {
	id := uuid.New()
	return r.WithContext(utils.SetUserContext(r.Context(), id, role)), id
}

func TestBookingHandler_ListBookingsUsesSessionRole(t *testing.T) {
	svc := new(mockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	req, userID := withUser(httptest.NewRequest(http.MethodGet, "/api/bookings", nil), "landlord")
	table := presenter.BuildTable(nil, presenter.Viewer{Role: presenter.RoleLandlord}, nil)
	svc.On("ListBookings", mock.Anything, userID.String(), presenter.Viewer{Role: presenter.RoleLandlord}).Return(table)

	rec := httptest.NewRecorder()
	h.ListBookings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status bool            `json:"status"`
		Data   presenter.Table `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Status)
	assert.Equal(t, "landlord", body.Data.Role)
	assert.Equal(t, presenter.PlaceholderOwner, body.Data.Placeholder)
}

func TestBookingHandler_ListBookingsUnknownRole(t *testing.T) {
	svc := new(mockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	req, _ := withUser(httptest.NewRequest(http.MethodGet, "/api/bookings", nil), "guest")
	rec := httptest.NewRecorder()
	h.ListBookings(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookingHandler_UpdateStatusErrors(t *testing.T) {
	tests := []struct {
		err  string
		code int
	}{
		{"booking 1 not found", http.StatusNotFound},
		{"forbidden: booking 1 is not on your property", http.StatusForbidden},
		{"cannot change booking status from paid to cancelled", http.StatusBadRequest},
		{"update booking 1 status: conn reset", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			svc := new(mockBookingService)
			h := NewBookingHandler(svc, zap.NewNop())

			svc.On("UpdateStatus", mock.Anything, mock.Anything, "landlord", "b-1", mock.Anything).
				Return(nil, errors.New(tt.err))

			r := chi.NewRouter()
			r.Put("/api/bookings/{id}/status", h.UpdateStatus)

			req, _ := withUser(httptest.NewRequest(http.MethodPut, "/api/bookings/b-1/status",
				strings.NewReader(`{"status":"cancelled"}`)), "landlord")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestBookingHandler_CreateBookingValidation(t *testing.T) {
	svc := new(mockBookingService)
	h := NewBookingHandler(svc, zap.NewNop())

	req, _ := withUser(httptest.NewRequest(http.MethodPost, "/api/bookings",
		strings.NewReader(`{"property_id":"nope","start_date":"01/02/2024"}`)), "contractor")
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_RequiresIdentity(t *testing.T) {
	h := NewBookingHandler(new(mockBookingService), zap.NewNop())

	rec := httptest.NewRecorder()
	h.ListBookings(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleServiceError_Conflicts(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(zap.NewNop(), rec, errors.New("cannot pay booking 1: invoice already paid"), "initiate payment")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	handleServiceError(zap.NewNop(), rec, errors.New("unauthorized: invalid credentials"), "login")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleServiceError_QueryErrorsAreInternal(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "x"`}
	err := fmt.Errorf("find booking x: %w", fmt.Errorf("find booking by ID x: %w", database.Wrap(pgErr)))

	rec := httptest.NewRecorder()
	handleServiceError(zap.NewNop(), rec, err, "get booking")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "invalid input syntax")

	// domain errors with the same wording still map to 400
	rec = httptest.NewRecorder()
	handleServiceError(zap.NewNop(), rec, errors.New("invalid booking ID format x"), "get booking")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
