// FILE: internal/service/admin_service.go
package service

import (
	"context"

	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/internal/pkg/logger"
	"pixfusion-be/internal/repository/specification"
	"pixfusion-be/internal/repository/unitofwork"
)

type IAdminService interface {
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
	ListUsers(ctx context.Context, limit, offset int) (*dto.AdminUserListResponse, error)
	GrantCredits(ctx context.Context, req *dto.AdminGrantCreditsRequest) error

	// SweepOrphanedDebits refunds generation debits whose generation failed
	// but never got its compensating refund (a crash between the failure and
	// the refund write).
	SweepOrphanedDebits(ctx context.Context) (*dto.AdminSweepResponse, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	creditService ICreditService
	log           logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, creditService ICreditService, log logger.ILogger) IAdminService {
	return &adminService{
		uowFactory:    uowFactory,
		creditService: creditService,
		log:           log,
	}
}

func (s *adminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, apperror.NewStorage("count users", err)
	}

	totalGens, err := uow.GenerationRepository().Count(ctx)
	if err != nil {
		return nil, apperror.NewStorage("count generations", err)
	}

	completed, err := uow.GenerationRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.GenerationStatusCompleted)})
	if err != nil {
		return nil, apperror.NewStorage("count completed generations", err)
	}

	failed, err := uow.GenerationRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.GenerationStatusFailed)})
	if err != nil {
		return nil, apperror.NewStorage("count failed generations", err)
	}

	spent, err := uow.CreditRepository().SumAmountByType(ctx, entity.TransactionTypeGeneration)
	if err != nil {
		return nil, apperror.NewStorage("sum generation transactions", err)
	}

	purchased, err := uow.CreditRepository().SumAmountByType(ctx, entity.TransactionTypePurchase)
	if err != nil {
		return nil, apperror.NewStorage("sum purchase transactions", err)
	}

	return &dto.AdminStatsResponse{
		TotalUsers:           totalUsers,
		TotalGenerations:     totalGens,
		CompletedGenerations: completed,
		FailedGenerations:    failed,
		CreditsSpent:         spent,
		CreditsPurchased:     purchased,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) (*dto.AdminUserListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, apperror.NewStorage("count users", err)
	}

	users, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, apperror.NewStorage("list users", err)
	}

	items := make([]dto.AdminUserItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.AdminUserItem{
			Id:        u.Id,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      string(u.Role),
			Status:    string(u.Status),
			Credits:   u.Credits,
			CreatedAt: u.CreatedAt,
		})
	}

	return &dto.AdminUserListResponse{Users: items, Total: total}, nil
}

func (s *adminService) GrantCredits(ctx context.Context, req *dto.AdminGrantCreditsRequest) error {
	description := req.Description
	if description == "" {
		description = "admin credit grant"
	}
	return s.creditService.Add(ctx, req.UserId, req.Amount, entity.TransactionTypeBonus, description, nil)
}

func (s *adminService) SweepOrphanedDebits(ctx context.Context) (*dto.AdminSweepResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	orphans, err := uow.CreditRepository().FindUnrefundedDebits(ctx)
	if err != nil {
		return nil, apperror.NewStorage("find unrefunded debits", err)
	}

	repaired := 0
	for _, debit := range orphans {
		err := s.creditService.Add(ctx, debit.UserId, debit.Amount,
			entity.TransactionTypeRefund, "reconciliation refund for failed generation", debit.GenerationId)
		if err != nil {
			s.log.Error("admin", "sweep refund failed", map[string]interface{}{
				"transaction_id": debit.Id.String(),
				"user_id":        debit.UserId.String(),
				"error":          err.Error(),
			})
			continue
		}
		repaired++
	}

	if repaired > 0 {
		s.log.Info("admin", "reconciliation sweep repaired debits", map[string]interface{}{
			"repaired": repaired,
			"found":    len(orphans),
		})
	}

	return &dto.AdminSweepResponse{Repaired: repaired}, nil
}
