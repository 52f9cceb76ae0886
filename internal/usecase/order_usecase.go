package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"robostore/internal/domain/model"
	"robostore/internal/notification"
	repo "robostore/internal/repository"

	"github.com/labstack/gommon/log"
)

// 注文番号の採番（テストで差し替える）
type OrderNumberGenerator interface {
	NewOrderNumber() string
}

// order_numberが衝突したときの再採番の上限
const maxOrderNumberAttempts = 3

// 注文の組み立て。
// 在庫確保→クーポン→金額計算→永続化を1トランザクションで行う。
// どこかで失敗したら在庫減算もクーポン加算もまとめて戻る。
type OrderUsecase struct {
	tx          repo.TransactionManager
	orderNumGen OrderNumberGenerator
	clock       Clock
	notifier    notification.Notifier
	adminEmail  string
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderNumGen OrderNumberGenerator,
	clock Clock,
	notifier notification.Notifier,
	adminEmail string,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		orderNumGen: orderNumGen,
		clock:       clock,
		notifier:    notifier,
		adminEmail:  adminEmail,
	}
}

// 注文リクエストの1行
type OrderLineInput struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Variant   string `json:"variant"`
}

type PlaceOrderInput struct {
	Items           []OrderLineInput
	ShippingAddress model.Address
	BillingAddress  *model.Address
	PaymentMethod   string
	CouponCode      string
	GuestEmail      string
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Variant   string `json:"variant,omitempty"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	OrderNumber   string            `json:"order_number"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	Subtotal      int64             `json:"subtotal"`
	Tax           int64             `json:"tax"`
	Shipping      int64             `json:"shipping"`
	Discount      int64             `json:"discount"`
	Total         int64             `json:"total"`
	CouponCode    string            `json:"coupon_code,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrder は注文を確定する。
// userIDはnil可（ゲスト注文。その場合guest_emailが必須）。
// クーポンの失敗は注文を止めない（割引なしで続行）。
// 在庫・商品の失敗は注文全体を中断する。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID *int64, in PlaceOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}
	if userID == nil && strings.TrimSpace(in.GuestEmail) == "" && strings.TrimSpace(in.ShippingAddress.Email) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "guest_email required")
	}

	//注文番号の一意制約に当たったらトランザクションごとやり直す
	//（衝突は確率的にしか防げないので、実際の保証はDBの一意制約）
	var out OrderOutput
	var err error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		out, err = u.placeOnce(ctx, userID, in)
		if !errors.Is(err, repo.ErrConflict) {
			break
		}
	}
	if errors.Is(err, repo.ErrConflict) {
		return OrderOutput{}, NewHTTPError(http.StatusConflict, "could not allocate order number")
	}
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

func (u *OrderUsecase) placeOnce(ctx context.Context, userID *int64, in PlaceOrderInput) (OrderOutput, error) {
	var out OrderOutput
	var createdOrder model.Order
	var createdItems []model.OrderItem

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()

		//在庫を確保しながら小計を積む（送信順に処理）
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var subtotal int64 = 0

		for _, line := range in.Items {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return &StockRejection{ProductID: line.ProductID, Reason: StockRejectProductNotFound}
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return &StockRejection{ProductID: line.ProductID, Reason: StockRejectProductNotFound}
			}

			//在庫減算（チェックと減算は1つのUPDATE）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return &StockRejection{
					ProductID:   line.ProductID,
					ProductName: p.Name,
					Reason:      StockRejectInsufficientStock,
					Available:   p.Stock,
				}
			}

			//価格は注文時点のスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            line.Quantity,
				Variant:             line.Variant,
				CreatedAt:           now,
			})

			subtotal += p.Price * line.Quantity
		}

		//クーポン（失敗しても注文は止めず、割引なしで続行）
		var discount int64 = 0
		appliedCode := ""
		if in.CouponCode != "" {
			d, code, rej, err := u.applyCoupon(ctx, r, in.CouponCode, subtotal, now)
			if err != nil {
				return err
			}
			if rej != nil {
				log.Warnf("coupon not applied to order: %v", rej)
			} else {
				discount = d
				appliedCode = code
			}
		}

		totals, err := ComputeTotals(subtotal, discount)
		if err != nil {
			return err
		}

		billing := in.ShippingAddress
		if in.BillingAddress != nil {
			billing = *in.BillingAddress
		}

		order := model.Order{
			OrderNumber:     u.orderNumGen.NewOrderNumber(),
			UserID:          userID,
			GuestEmail:      strings.TrimSpace(in.GuestEmail),
			Subtotal:        subtotal,
			Tax:             totals.Tax,
			Shipping:        totals.Shipping,
			Discount:        discount,
			Total:           totals.Total,
			CouponCode:      appliedCode,
			Status:          model.OrderStatusPending,
			PaymentMethod:   in.PaymentMethod,
			PaymentStatus:   model.PaymentStatusPending,
			ShippingAddress: in.ShippingAddress,
			BillingAddress:  billing,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err == repo.ErrConflict {
			//番号衝突。呼び出し側で再採番してやり直す
			return repo.ErrConflict
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		createdOrder = order
		createdItems = orderItems
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//確定後の通知はベストエフォート（失敗してもログだけ）
	u.notifyOrderPlaced(createdOrder, createdItems)

	return out, nil
}

// クーポンを検証して、通ればused_countを加算する。
// 加算は「残り回数があるときだけ+1」の条件付きUPDATEなので、
// 同時に2つの注文が最後の1回を取り合っても片方しか通らない。
// 返り値: (割引額, 適用コード, 拒否, 内部エラー)
func (u *OrderUsecase) applyCoupon(ctx context.Context, r repo.TxRepos, code string, subtotal int64, now time.Time) (int64, string, *CouponRejection, error) {
	code = NormalizeCouponCode(code)

	c, err := r.Coupons().FindByCode(ctx, code)
	if err == repo.ErrNotFound {
		return 0, "", &CouponRejection{Code: code, Reason: CouponRejectNotFound}, nil
	}
	if err != nil {
		return 0, "", nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	discount, rej := evaluateCoupon(c, subtotal, now)
	if rej != nil {
		return 0, "", rej, nil
	}

	ok, err := r.Coupons().IncrementUsageIfAvailable(ctx, c.ID)
	if err != nil {
		return 0, "", nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		//チェック後に他の注文が最後の1回を使った
		return 0, "", &CouponRejection{Code: code, Reason: CouponRejectExhausted}, nil
	}

	return discount, c.Code, nil, nil
}

// 購入者と運営者への通知。fire-and-forgetで、結果は注文に影響しない
func (u *OrderUsecase) notifyOrderPlaced(o model.Order, items []model.OrderItem) {
	buyer := o.GuestEmail
	if buyer == "" {
		buyer = o.ShippingAddress.Email
	}

	go func() {
		ctx := context.Background()

		subject, body, err := notification.BuildOrderConfirmation(o, items)
		if err != nil {
			log.Errorf("build order confirmation for %s: %v", o.OrderNumber, err)
		} else if err := u.notifier.Notify(ctx, buyer, subject, body); err != nil {
			log.Errorf("notify buyer for %s: %v", o.OrderNumber, err)
		}

		if u.adminEmail != "" {
			subject, body := notification.BuildNewOrderAlert(o)
			if err := u.notifier.Notify(ctx, u.adminEmail, subject, body); err != nil {
				log.Errorf("notify admin for %s: %v", o.OrderNumber, err)
			}
		}
	}()
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

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
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
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
		if o.UserID == nil || *o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
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

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Variant:   it.Variant,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		Discount:      o.Discount,
		Total:         o.Total,
		CouponCode:    o.CouponCode,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
