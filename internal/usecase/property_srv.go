package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"property-booking/internal/data/entity"
	"property-booking/internal/data/repository"
	"property-booking/internal/dto/request"
	"property-booking/internal/dto/response"
	"property-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PropertyService interface {
	CreateProperty(ctx context.Context, landlordID string, req *request.CreatePropertyRequest) (*response.PropertyResponse, error)
	GetProperty(ctx context.Context, propertyID string) (*response.PropertyResponse, error)
	ListProperties(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PropertyResponse], error)
	ListLandlordProperties(ctx context.Context, landlordID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PropertyResponse], error)
}

type propertyService struct {
	repo repository.PropertyRepository
	log  *zap.Logger
}

func NewPropertyService(repo repository.PropertyRepository, log *zap.Logger) PropertyService {
	return &propertyService{
		repo: repo,
		log:  log.With(zap.String("service", "property")),
	}
}

func (s *propertyService) CreateProperty(ctx context.Context, landlordID string, req *request.CreatePropertyRequest) (*response.PropertyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create property validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	owner, err := uuid.Parse(landlordID)
	if err != nil {
		return nil, fmt.Errorf("invalid landlord ID format %s: %w", landlordID, err)
	}

	now := time.Now()
	property := &entity.Property{
		Base:        entity.NewBase(now),
		LandlordID:  owner,
		Title:       strings.TrimSpace(req.Title),
		Address:     strings.TrimSpace(req.Address),
		Description: req.Description,
		Price:       req.Price,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.log.Error("Failed to create property", zap.Error(err), zap.String("landlord_id", landlordID))
		return nil, fmt.Errorf("create property: %w", err)
	}

	s.log.Info("Property created",
		zap.String("property_id", property.ID.String()),
		zap.String("landlord_id", landlordID),
	)

	resp := response.PropertyToResponse(property)
	return &resp, nil
}

func (s *propertyService) GetProperty(ctx context.Context, propertyID string) (*response.PropertyResponse, error) {
	id, err := uuid.Parse(propertyID)
	if err != nil {
		return nil, fmt.Errorf("invalid property ID format %s: %w", propertyID, err)
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find property", zap.Error(err), zap.String("property_id", propertyID))
		return nil, fmt.Errorf("find property %s: %w", propertyID, err)
	}
	if property == nil {
		return nil, fmt.Errorf("property %s not found", propertyID)
	}

	resp := response.PropertyToResponse(property)
	return &resp, nil
}

func (s *propertyService) ListProperties(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PropertyResponse], error) {
	return s.list(ctx, nil, req)
}

func (s *propertyService) ListLandlordProperties(ctx context.Context, landlordID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PropertyResponse], error) {
	owner, err := uuid.Parse(landlordID)
	if err != nil {
		return nil, fmt.Errorf("invalid landlord ID format %s: %w", landlordID, err)
	}
	return s.list(ctx, &owner, req)
}

func (s *propertyService) list(ctx context.Context, landlordID *uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PropertyResponse], error) {
	properties, err := s.repo.FindAll(ctx, landlordID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list properties", zap.Error(err))
		return nil, fmt.Errorf("list properties: %w", err)
	}

	total, err := s.repo.CountAll(ctx, landlordID)
	if err != nil {
		s.log.Error("Failed to count properties", zap.Error(err))
		return nil, fmt.Errorf("count properties: %w", err)
	}

	items := make([]response.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		items = append(items, response.PropertyToResponse(p))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}
