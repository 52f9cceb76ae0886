package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// 注文ステータスの遷移表。
// cancelledは終端以外のどこからでも到達できる。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// fromからtoへ遷移できるか
func CanTransitionOrderStatus(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// 支払いステータスの遷移表
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:  {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:     {PaymentStatusRefunded},
	PaymentStatusFailed:   {PaymentStatusPending},
	PaymentStatusRefunded: {},
}

func CanTransitionPaymentStatus(from, to PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// 注文。金額はすべてセントで、作成時に一度だけ計算する。
// total = subtotal + tax + shipping - discount が常に成り立つ。
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"type:varchar(50);not null;uniqueIndex" json:"order_number"`

	//会員注文ならUserID、ゲスト注文ならGuestEmail
	UserID     *int64 `gorm:"index" json:"user_id,omitempty"`
	GuestEmail string `gorm:"type:varchar(255)" json:"guest_email,omitempty"`

	Subtotal int64 `gorm:"not null" json:"subtotal"`
	Tax      int64 `gorm:"not null" json:"tax"`
	Shipping int64 `gorm:"not null" json:"shipping"`
	Discount int64 `gorm:"not null" json:"discount"`
	Total    int64 `gorm:"not null" json:"total"`

	//適用したクーポンコード（未適用なら空）
	CouponCode string `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`

	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod string        `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  Address `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`

	TrackingNumber string `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`
	Notes          string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
