package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseCreated(rec, "created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Status)
	assert.Equal(t, "created", body.Message)
	assert.Nil(t, body.Errors)
}

func TestResponseRelay(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseRelayFailed(rec, "Failed to submit form", "http 502")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Failed to submit form","error":"http 502"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	ResponseRelayOK(rec, "Form submitted successfully")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Form submitted successfully"}`, rec.Body.String())
}

func TestUserContext(t *testing.T) {
	id := uuid.New()
	ctx := SetUserContext(context.Background(), id, "landlord")

	got, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	role, ok := GetRoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "landlord", role)

	_, ok = GetTokenFromContext(ctx)
	assert.False(t, ok)

	ctx = SetIdentity(context.Background(), Identity{UserID: id, Role: "admin", Token: "tok"})
	token, ok := GetTokenFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", token)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Email string  `validate:"required,email"`
		Price float64 `validate:"gt=0"`
		Role  string  `validate:"oneof=contractor landlord"`
	}

	errs := ValidateStruct(sample{Email: "nope", Price: 0, Role: "admin"})
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Equal(t, "Must be greater than 0", errs["Price"])
	assert.Equal(t, "Must be one of: contractor, landlord", errs["Role"])

	assert.Nil(t, ValidateStruct(sample{Email: "a@b.co", Price: 10, Role: "landlord"}))
}

func TestValidateStruct_JSONNames(t *testing.T) {
	type body struct {
		StartDate string `json:"start_date" validate:"required"`
		Ignored   string `json:"-" validate:"required"`
	}

	errs := ValidateStruct(body{})
	assert.Equal(t, "This field is required", errs["start_date"])
	assert.NotContains(t, errs, "StartDate")
}

func TestFormatValidationErrors_Sorted(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"title": "This field is required",
		"price": "Must be greater than 0",
	})
	assert.Equal(t, "price: Must be greater than 0; title: This field is required", got)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-04")
	require.NoError(t, err)
	assert.Equal(t, 4, d.Day())

	_, err = ParseDate("04/01/2024")
	assert.ErrorContains(t, err, "invalid date")
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}
