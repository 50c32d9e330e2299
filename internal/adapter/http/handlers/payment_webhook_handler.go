package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	response "storefront/internal/adapter/http/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderWebhookSignature = "Revolut-Signature"
	HeaderWebhookTimestamp = "Revolut-Request-Timestamp"
)

var (
	errInvalidSignature = pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid signature", http.StatusUnauthorized)
	errPaymentLookup    = pkg.NewDomainErrorSimple("PAYMENT_LOOKUP_FAILED", "Payment lookup failed", http.StatusBadGateway)
)

// mercadoPagoNotification covers both the webhook body and the legacy IPN
// shape. data.id arrives as a string or a number depending on the sender.
type mercadoPagoNotification struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// PaymentWebhookHandler receives payment provider callbacks.
//
// Only a signature failure, or a Mercado Pago payment that could not be read
// back, is answered with an error. Everything else is acknowledged with 200
// and logged, so the provider does not retry events the store cannot act on.
type PaymentWebhookHandler struct {
	usecase usecase.IPaymentWebhookUseCase
}

func NewPaymentWebhookHandler(uc usecase.IPaymentWebhookUseCase) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{usecase: uc}
}

// Handle godoc
// @Summary      Payment provider webhook
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Revolut-Signature          header    string  false  "v1=<hex hmac>"
// @Param        Revolut-Request-Timestamp  header    string  false  "Unix millis"
// @Success      200                        {object}  response.WebhookAckResponse
// @Failure      401                        {object}  pkg.HTTPError
// @Router       /webhooks/payments [post]
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		log.Printf("[payment][webhook] read body failed err=%v", err)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
		return
	}

	res, err := h.usecase.HandleEvent(c.Request.Context(), body, c.GetHeader(HeaderWebhookSignature), c.GetHeader(HeaderWebhookTimestamp))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidWebhookSignature) {
			log.Printf("[payment][webhook] rejected invalid signature ip=%s", c.ClientIP())
			c.JSON(errInvalidSignature.HTTPStatus, errInvalidSignature.ToHTTPError())
			return
		}
		log.Printf("[payment][webhook] processing failed event=%s order_id=%s err=%v", res.Event, res.OrderID, err)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
		return
	}

	log.Printf("[payment][webhook] processed event=%s order_id=%s action=%s", res.Event, res.OrderID, res.Action)
	c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
}

// HandleMercadoPago godoc
// @Summary      Mercado Pago payment notification
// @Description  Accepts webhook and IPN deliveries. The payment is read back from Mercado Pago and matched to the order by external reference.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        type     query     string  false  "Notification type (webhook)"
// @Param        data.id  query     string  false  "Payment id (webhook)"
// @Param        topic    query     string  false  "Notification topic (IPN)"
// @Param        id       query     string  false  "Payment id (IPN)"
// @Success      200      {object}  response.WebhookAckResponse
// @Failure      502      {object}  pkg.HTTPError
// @Router       /webhooks/mercadopago [post]
func (h *PaymentWebhookHandler) HandleMercadoPago(c *gin.Context) {
	n := parseMercadoPagoNotification(c)

	res, err := h.usecase.HandlePaymentNotification(c.Request.Context(), n)
	if err != nil {
		if errors.Is(err, usecase.ErrPaymentLookupFailed) {
			log.Printf("[payment][notification] lookup failed, asking for redelivery payment_id=%s err=%v", n.PaymentID, err)
			c.JSON(errPaymentLookup.HTTPStatus, errPaymentLookup.ToHTTPError())
			return
		}
		log.Printf("[payment][notification] processing failed topic=%s payment_id=%s order_id=%s err=%v", n.Topic, n.PaymentID, res.OrderID, err)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
		return
	}

	log.Printf("[payment][notification] processed event=%s order_id=%s action=%s", res.Event, res.OrderID, res.Action)
	c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
}

func parseMercadoPagoNotification(c *gin.Context) usecase.PaymentNotification {
	var body mercadoPagoNotification
	if raw, err := c.GetRawData(); err == nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			log.Printf("[payment][notification] body ignored body_len=%d err=%v", len(raw), err)
		}
	}

	topic := firstNonEmpty(body.Type, body.Topic, c.Query("type"), c.Query("topic"))
	id := firstNonEmpty(strings.Trim(string(body.Data.ID), `"`), c.Query("data.id"), c.Query("id"))
	return usecase.PaymentNotification{Topic: topic, PaymentID: id}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && v != "null" {
			return v
		}
	}
	return ""
}
