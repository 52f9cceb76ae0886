package usecase

import (
	"context"
	"net/http"
	"time"

	repo "robostore/internal/repository"
)

type AuditLogOutput struct {
	ID           int64     `json:"id"`
	ActorUserID  int64     `json:"actor_user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int64     `json:"resource_id"`
	Before       string    `json:"before"`
	After        string    `json:"after"`
	CreatedAt    time.Time `json:"created_at"`
}

// 管理ダッシュボードの集計
type AnalyticsUsecase struct {
	tx        repo.TransactionManager
	userRepo  repo.UserRepository
	auditRepo repo.AuditLogRepository
}

func NewAnalyticsUsecase(tx repo.TransactionManager, userRepo repo.UserRepository, auditRepo repo.AuditLogRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{tx: tx, userRepo: userRepo, auditRepo: auditRepo}
}

type DashboardOutput struct {
	TotalOrders    int64               `json:"total_orders"`
	TotalRevenue   int64               `json:"total_revenue"`
	ActiveProducts int64               `json:"active_products"`
	TotalUsers     int64               `json:"total_users"`
	RecentOrders   []OrderOutput       `json:"recent_orders"`
	TopProducts    []repo.ProductSales `json:"top_products"`
}

func (u *AnalyticsUsecase) Dashboard(ctx context.Context, adminUserID int64) (DashboardOutput, error) {
	if adminUserID <= 0 {
		return DashboardOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out DashboardOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		totalOrders, err := r.Orders().CountAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//cancelledは売上に含めない
		revenue, err := r.Orders().SumRevenue(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		activeProducts, err := r.Products().CountActive(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		recent, _, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{Page: 1, Limit: 5})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		recentOuts := make([]OrderOutput, 0, len(recent))
		for _, o := range recent {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			recentOuts = append(recentOuts, toOrderOutput(o, items))
		}

		top, err := r.Orders().TopProducts(ctx, 5)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = DashboardOutput{
			TotalOrders:    totalOrders,
			TotalRevenue:   revenue,
			ActiveProducts: activeProducts,
			RecentOrders:   recentOuts,
			TopProducts:    top,
		}
		return nil
	})

	if err != nil {
		return DashboardOutput{}, err
	}

	totalUsers, err := u.userRepo.CountAll(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.TotalUsers = totalUsers

	return out, nil
}

// 監査ログの閲覧（管理者のみ）
func (u *AnalyticsUsecase) ListAuditLogs(ctx context.Context, adminUserID int64, f repo.AuditLogFilter) ([]AuditLogOutput, error) {
	if adminUserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 50
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]AuditLogOutput, 0, len(logs))
	for _, l := range logs {
		outs = append(outs, AuditLogOutput{
			ID:           l.ID,
			ActorUserID:  l.ActorUserID,
			Action:       string(l.Action),
			ResourceType: string(l.ResourceType),
			ResourceID:   l.ResourceID,
			Before:       l.BeforeJSON,
			After:        l.AfterJSON,
			CreatedAt:    l.CreatedAt,
		})
	}
	return outs, nil
}
