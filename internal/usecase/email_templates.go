package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

// StoreInfo is the storefront identity used in outbound email.
type StoreInfo struct {
	Name       string
	URL        string
	AdminEmail string
}

var emailTemplates = template.Must(template.New("emails").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}).Parse(`
{{define "order_confirmation"}}<h1>Thank you for your order</h1>
<p>Your payment for order <strong>{{.Order.OrderNumber}}</strong> was received.</p>
<table>
{{range .Items}}<tr><td>{{.Title}}</td><td>{{.Quantity}} x {{money .Price}}</td><td>{{money .Total}}</td></tr>
{{end}}</table>
<p>Subtotal: {{money .Order.Subtotal}}<br>Shipping: {{money .Order.ShippingCost}}<br><strong>Total: {{money .Order.Total}}</strong></p>
<p>Shipping to: {{.Order.ShippingAddress.Name}}, {{.Order.ShippingAddress.Line1}}, {{.Order.ShippingAddress.City}} {{.Order.ShippingAddress.PostalCode}}</p>
<p><a href="{{.Store.URL}}">{{.Store.Name}}</a></p>{{end}}

{{define "order_shipped"}}<h1>Your order is on its way</h1>
<p>Order <strong>{{.Order.OrderNumber}}</strong> has been shipped.</p>
{{if .TrackingNote}}<p>{{.TrackingNote}}</p>{{end}}
<p><a href="{{.Store.URL}}">{{.Store.Name}}</a></p>{{end}}

{{define "contact_admin"}}<h1>New contact form submission</h1>
<p><strong>Name:</strong> {{.Message.Name}}<br>
<strong>Email:</strong> {{.Message.Email}}<br>
{{if .Message.Phone}}<strong>Phone:</strong> {{.Message.Phone}}<br>{{end}}
<strong>Subject:</strong> {{.Message.Subject}}</p>
<p>{{.Message.Message}}</p>{{end}}

{{define "contact_auto_reply"}}<h1>We received your message</h1>
<p>Hi {{.Message.Name}}, thanks for contacting {{.Store.Name}}. We will get back to you shortly.</p>
<p><em>{{.Message.Subject}}</em></p>{{end}}
`))

func renderEmail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func orderConfirmationEmail(store StoreInfo, o entities.Order, items []entities.OrderItem) (interfaces.EmailMessage, error) {
	html, err := renderEmail("order_confirmation", map[string]any{"Store": store, "Order": o, "Items": items})
	if err != nil {
		return interfaces.EmailMessage{}, err
	}
	return interfaces.EmailMessage{
		To:      []string{o.Email},
		Subject: fmt.Sprintf("Order confirmed - %s", o.OrderNumber),
		HTML:    html,
		Text:    fmt.Sprintf("Your payment for order %s was received. Total: %s", o.OrderNumber, o.Total.StringFixed(2)),
	}, nil
}

func orderShippedEmail(store StoreInfo, o entities.Order, trackingNote string) (interfaces.EmailMessage, error) {
	html, err := renderEmail("order_shipped", map[string]any{"Store": store, "Order": o, "TrackingNote": trackingNote})
	if err != nil {
		return interfaces.EmailMessage{}, err
	}
	text := fmt.Sprintf("Order %s has been shipped.", o.OrderNumber)
	if trackingNote != "" {
		text += "\n" + trackingNote
	}
	return interfaces.EmailMessage{
		To:      []string{o.Email},
		Subject: fmt.Sprintf("Your order %s has shipped", o.OrderNumber),
		HTML:    html,
		Text:    text,
	}, nil
}

func contactAdminEmail(store StoreInfo, m ContactMessage) (interfaces.EmailMessage, error) {
	html, err := renderEmail("contact_admin", map[string]any{"Store": store, "Message": m})
	if err != nil {
		return interfaces.EmailMessage{}, err
	}
	return interfaces.EmailMessage{
		To:      []string{store.AdminEmail},
		ReplyTo: m.Email,
		Subject: fmt.Sprintf("[Contact] %s", m.Subject),
		HTML:    html,
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", m.Name, m.Email, m.Message),
	}, nil
}

func contactAutoReplyEmail(store StoreInfo, m ContactMessage) (interfaces.EmailMessage, error) {
	html, err := renderEmail("contact_auto_reply", map[string]any{"Store": store, "Message": m})
	if err != nil {
		return interfaces.EmailMessage{}, err
	}
	return interfaces.EmailMessage{
		To:      []string{m.Email},
		Subject: fmt.Sprintf("We received your message - %s", store.Name),
		HTML:    html,
		Text:    fmt.Sprintf("Hi %s, thanks for contacting %s. We will get back to you shortly.", m.Name, store.Name),
	}, nil
}
