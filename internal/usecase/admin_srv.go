package usecase

import (
	"context"
	"fmt"

	"property-booking/internal/data/repository"
	"property-booking/internal/dto/request"
	"property-booking/internal/dto/response"

	"go.uber.org/zap"
)

type AdminService interface {
	ListContractors(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ContractorResponse], error)
	ListInvoices(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.InvoiceResponse], error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListContractors(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ContractorResponse], error) {
	contractors, err := s.repo.Contractor.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list contractors", zap.Error(err))
		return nil, fmt.Errorf("list contractors: %w", err)
	}

	total, err := s.repo.Contractor.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count contractors", zap.Error(err))
		return nil, fmt.Errorf("count contractors: %w", err)
	}

	items := make([]response.ContractorResponse, 0, len(contractors))
	for _, c := range contractors {
		items = append(items, response.ContractorToResponse(c))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}

func (s *adminService) ListInvoices(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.InvoiceResponse], error) {
	invoices, err := s.repo.Invoice.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	total, err := s.repo.Invoice.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count invoices", zap.Error(err))
		return nil, fmt.Errorf("count invoices: %w", err)
	}

	items := make([]response.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, response.InvoiceToResponse(inv))
	}

	return response.NewPaginatedResponse(items, req.CurrentPage(), req.Limit(), total), nil
}
