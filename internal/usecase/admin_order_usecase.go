package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"robostore/internal/domain/model"
	"robostore/internal/notification"
	repo "robostore/internal/repository"

	"github.com/labstack/gommon/log"
)

type AdminOrderUsecase struct {
	tx       repo.TransactionManager
	notifier notification.Notifier
}

func NewAdminOrderUsecase(tx repo.TransactionManager, notifier notification.Notifier) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, notifier: notifier}
}

func (u *AdminOrderUsecase) List(ctx context.Context, adminUserID int64, f repo.AdminOrderListFilter) ([]OrderOutput, int64, error) {
	if adminUserID <= 0 {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if f.Page < 1 {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Status != "" && !model.IsOrderStatus(f.Status) {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, t, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		total = t

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, 0, err
	}
	return outs, total, nil
}

func (u *AdminOrderUsecase) GetDetail(ctx context.Context, adminUserID int64, orderID int64) (OrderOutput, error) {
	if adminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type AdminUpdateOrderStatusInput struct {
	Status         string
	TrackingNumber string
}

// ステータス更新。遷移表に無い遷移は拒否する。
// cancelledへの遷移では注文分の在庫を戻す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if !model.IsOrderStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var updated model.Order
	var changed bool

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//すでに同じなら何もしない（200）
		if string(o.Status) == newStatus {
			updated = o
			return nil
		}
		if !model.CanTransitionOrderStatus(o.Status, model.OrderStatus(newStatus)) {
			return NewHTTPError(http.StatusBadRequest, "cannot change "+string(o.Status)+" order to "+newStatus)
		}

		//キャンセル時は在庫戻し
		if model.OrderStatus(newStatus) == model.OrderStatusCancelled {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		beforeStatus := string(o.Status)
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if strings.TrimSpace(in.TrackingNumber) != "" {
			if err := r.Orders().UpdateTrackingNumber(ctx, orderID, strings.TrimSpace(in.TrackingNumber)); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			o.TrackingNumber = strings.TrimSpace(in.TrackingNumber)
		}

		beforeJSON := `{"status":"` + beforeStatus + `"}`
		afterJSON := `{"status":"` + newStatus + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatus(newStatus)
		updated = o
		changed = true
		return nil
	})

	if err != nil {
		return err
	}

	//購入者へのステータス通知。失敗しても更新は成立する
	if changed {
		u.notifyStatusUpdate(updated)
	}

	return nil
}

type AdminUpdatePaymentStatusInput struct {
	PaymentStatus string
}

func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdatePaymentStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.PaymentStatus)
	if !model.IsPaymentStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid payment status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if string(o.PaymentStatus) == newStatus {
			return nil
		}
		if !model.CanTransitionPaymentStatus(o.PaymentStatus, model.PaymentStatus(newStatus)) {
			return NewHTTPError(http.StatusBadRequest, "cannot change "+string(o.PaymentStatus)+" payment to "+newStatus)
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, model.PaymentStatus(newStatus)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeJSON := `{"payment_status":"` + string(o.PaymentStatus) + `"}`
		afterJSON := `{"payment_status":"` + newStatus + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdatePaymentStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func (u *AdminOrderUsecase) notifyStatusUpdate(o model.Order) {
	to := o.GuestEmail
	if to == "" {
		to = o.ShippingAddress.Email
	}
	if to == "" {
		return
	}

	go func() {
		subject, body, err := notification.BuildStatusUpdate(o)
		if err != nil {
			log.Errorf("build status update for %s: %v", o.OrderNumber, err)
			return
		}
		if err := u.notifier.Notify(context.Background(), to, subject, body); err != nil {
			log.Errorf("notify status update for %s: %v", o.OrderNumber, err)
		}
	}()
}
