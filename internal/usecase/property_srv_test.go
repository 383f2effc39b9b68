package usecase

import (
	"context"
	"testing"
	"time"

	"property-booking/internal/data/entity"
	"property-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPropertyService_CreateProperty(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewPropertyService(repo, zap.NewNop())
	ctx := context.Background()
	landlordID := uuid.New()

	repo.On("Create", ctx, mock.MatchedBy(func(p *entity.Property) bool {
		return p.LandlordID == landlordID && p.Title == "Lake House"
	})).Return(nil)

	resp, err := svc.CreateProperty(ctx, landlordID.String(), &request.CreatePropertyRequest{
		Title:   "  Lake House ",
		Address: "1 Shore Rd",
		Price:   120,
	})

	require.NoError(t, err)
	assert.Equal(t, landlordID.String(), resp.LandlordID)
	assert.Equal(t, 120.0, resp.Price)

	_, err = svc.CreateProperty(ctx, landlordID.String(), &request.CreatePropertyRequest{
		Title:   "Free Shed",
		Address: "2 Back Ln",
		Price:   0,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestPropertyService_GetPropertyNotFound(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewPropertyService(repo, zap.NewNop())
	ctx := context.Background()

	id := uuid.New()
	repo.On("FindByID", ctx, id).Return(nil, nil)

	_, err := svc.GetProperty(ctx, id.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = svc.GetProperty(ctx, "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestPropertyService_ListLandlordProperties(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewPropertyService(repo, zap.NewNop())
	ctx := context.Background()
	landlordID := uuid.New()

	owned := func(id *uuid.UUID) bool { return id != nil && *id == landlordID }
	repo.On("FindAll", ctx, mock.MatchedBy(owned), 10, 10).Return([]*entity.Property{
		{Base: entity.Base{ID: uuid.New()}, LandlordID: landlordID, Title: "A"},
	}, nil)
	repo.On("CountAll", ctx, mock.MatchedBy(owned)).Return(int64(11), nil)

	resp, err := svc.ListLandlordProperties(ctx, landlordID.String(), &request.PaginatedRequest{Page: 2, PerPage: 10})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(11), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestAdminService_ListInvoices(t *testing.T) {
	m, repo := newMocks()
	svc := NewAdminService(repo, zap.NewNop())
	ctx := context.Background()

	m.invoice.On("FindAll", ctx, 10, 0).Return([]*entity.Invoice{}, nil)
	m.invoice.On("CountAll", ctx).Return(int64(0), nil)

	resp, err := svc.ListInvoices(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10})

	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestAdminService_ListContractors(t *testing.T) {
	m, repo := newMocks()
	svc := NewAdminService(repo, zap.NewNop())
	ctx := context.Background()

	contractor := &entity.Contractor{
		BaseNoDelete: entity.NewBaseNoDelete(time.Now()),
		UserID:       uuid.New(),
		FullName:     "Dana Builder",
	}
	m.contractor.On("FindAll", ctx, 100, 200).Return([]*entity.Contractor{contractor}, nil)
	m.contractor.On("CountAll", ctx).Return(int64(201), nil)

	resp, err := svc.ListContractors(ctx, &request.PaginatedRequest{Page: 3, PerPage: 500})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Dana Builder", resp.Data[0].FullName)
	assert.Equal(t, 3, resp.Pagination.Page)
	assert.Equal(t, 100, resp.Pagination.PerPage)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}
