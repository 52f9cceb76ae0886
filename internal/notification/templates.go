package notification

import (
	"bytes"
	"fmt"
	"text/template"

	"robostore/internal/domain/model"
)

// メール本文のテンプレート。金額はセントで受け取り、usdで整形する。
var tmplFuncs = template.FuncMap{
	"usd": func(cents int64) string {
		return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
	},
}

var orderConfirmationTmpl = template.Must(template.New("orderConfirmation").Funcs(tmplFuncs).Parse(`
<h2>Order Confirmation - {{.Order.OrderNumber}}</h2>
<p>Thank you for your order!</p>
<h3>Order Details:</h3>
<ul>
{{- range .Items}}
  <li>{{.Quantity}}x {{.ProductNameSnapshot}} ({{usd .UnitPriceSnapshot}}){{if .Variant}} - {{.Variant}}{{end}}</li>
{{- end}}
</ul>
<p>Subtotal: {{usd .Order.Subtotal}}<br>
Tax: {{usd .Order.Tax}}<br>
Shipping: {{usd .Order.Shipping}}<br>
{{- if gt .Order.Discount 0}}
Discount: -{{usd .Order.Discount}}<br>
{{- end}}
<strong>Total: {{usd .Order.Total}}</strong></p>
<p>We'll send you tracking information once your order ships.</p>
`))

var statusUpdateTmpl = template.Must(template.New("statusUpdate").Funcs(tmplFuncs).Parse(`
<h2>Order Status Update - {{.Order.OrderNumber}}</h2>
<p>Your order status has been updated to: <strong>{{.Order.Status}}</strong></p>
{{- if .Order.TrackingNumber}}
<p>Tracking Number: <strong>{{.Order.TrackingNumber}}</strong></p>
{{- end}}
`))

// 購入者向けの注文確認メール
func BuildOrderConfirmation(o model.Order, items []model.OrderItem) (subject string, body string, err error) {
	var buf bytes.Buffer
	err = orderConfirmationTmpl.Execute(&buf, struct {
		Order model.Order
		Items []model.OrderItem
	}{o, items})
	if err != nil {
		return "", "", err
	}
	return "Order Confirmation - " + o.OrderNumber, buf.String(), nil
}

// 店舗運営者向けの新規注文通知
func BuildNewOrderAlert(o model.Order) (subject string, body string) {
	subject = "New Order - " + o.OrderNumber
	body = fmt.Sprintf("New order received: %s - Total: $%d.%02d",
		o.OrderNumber, o.Total/100, o.Total%100)
	return subject, body
}

// ステータス更新メール
func BuildStatusUpdate(o model.Order) (subject string, body string, err error) {
	var buf bytes.Buffer
	err = statusUpdateTmpl.Execute(&buf, struct{ Order model.Order }{o})
	if err != nil {
		return "", "", err
	}
	return "Order Update - " + o.OrderNumber, buf.String(), nil
}
