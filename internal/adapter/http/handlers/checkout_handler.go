package handlers

import (
	"errors"
	"log"
	"net/http"

	request "storefront/internal/adapter/http/dto/request"
	response "storefront/internal/adapter/http/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid checkout payload", http.StatusBadRequest)

// CheckoutHandler serves cart submission, order status polling and hosted
// payment sessions.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// PlaceOrder godoc
// @Summary      Submit a cart
// @Description  Validates the cart against the catalog, prices it, creates a pending order and decrements inventory.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckoutRequest  true  "Cart"
// @Success      200      {object}  response.CheckoutResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      429      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var payload request.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[checkout][handler] invalid payload err=%v", err)
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	result, err := h.usecase.PlaceOrder(c.Request.Context(), payload.ToCommand())
	if err != nil {
		appErr := mapCheckoutError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Printf("[checkout][handler] place order failed err=%v", err)
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCheckoutResult(result))
}

// GetStatus godoc
// @Summary      Poll order status
// @Tags         checkout
// @Produce      json
// @Param        orderId  query     string  true  "Order id"
// @Success      200      {object}  response.CheckoutStatusResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /checkout/status [get]
func (h *CheckoutHandler) GetStatus(c *gin.Context) {
	status, err := h.usecase.GetStatus(c.Request.Context(), c.Query("orderId"))
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCheckoutStatus(status))
}

// CreatePaymentSession godoc
// @Summary      Start a hosted payment session
// @Tags         checkout
// @Produce      json
// @Param        order_id  path      string  true  "Order id"
// @Success      200       {object}  response.PaymentSessionResponse
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Failure      502       {object}  pkg.HTTPError
// @Router       /checkout/{order_id}/payment-session [post]
func (h *CheckoutHandler) CreatePaymentSession(c *gin.Context) {
	orderID := c.Param("order_id")
	session, err := h.usecase.CreatePaymentSession(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[checkout][handler] payment session failed order_id=%s err=%v", orderID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPaymentSession(session))
}

func mapCheckoutError(err error) *pkg.AppError {
	var rejection *usecase.ItemRejection
	if errors.As(err, &rejection) {
		code := "PRODUCT_UNAVAILABLE"
		switch {
		case errors.Is(err, usecase.ErrInsufficientStock):
			code = "INSUFFICIENT_STOCK"
		case errors.Is(err, usecase.ErrProductInactive):
			code = "PRODUCT_INACTIVE"
		}
		return pkg.NewDomainError(code, rejection.Error(), err, http.StatusBadRequest)
	}

	switch {
	case errors.Is(err, usecase.ErrEmptyCart):
		return pkg.NewDomainErrorSimple("EMPTY_CART", "Cart is empty", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingContactInfo):
		return pkg.NewDomainErrorSimple("MISSING_CONTACT_INFO", "Email and phone are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrIncompleteAddress):
		return pkg.NewDomainErrorSimple("INCOMPLETE_ADDRESS", "Shipping address is incomplete", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidQuantity):
		return pkg.NewDomainErrorSimple("INVALID_QUANTITY", "Item quantity must be at least 1", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "orderId is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderAlreadyPaid):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_PAID", "Order is already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_UNAVAILABLE", "Payments are not available right now", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentProviderFailure):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider error", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrOrderPersistFailure):
		return pkg.NewDomainError("ORDER_CREATE_FAILED", "Failed to create order", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
