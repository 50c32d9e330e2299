package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	request "storefront/internal/adapter/http/dto/request"
	response "storefront/internal/adapter/http/dto/response"
	"storefront/internal/adapter/http/middleware"
	"storefront/internal/usecase"
	"storefront/pkg"

	"github.com/gin-gonic/gin"
)

// AdminOrderHandler serves staff actions on orders.
type AdminOrderHandler struct {
	usecase usecase.IOrderNotificationUseCase
}

func NewAdminOrderHandler(uc usecase.IOrderNotificationUseCase) *AdminOrderHandler {
	return &AdminOrderHandler{usecase: uc}
}

// NotifyShipped godoc
// @Summary      Mark an order shipped and email the customer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        order_id  path      string                         true   "Order id"
// @Param        request   body      request.NotifyShippedRequest  false  "Tracking note"
// @Success      200       {object}  response.OrderSummaryResponse
// @Failure      401       {object}  pkg.HTTPError
// @Failure      403       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      500       {object}  pkg.HTTPError
// @Router       /admin/orders/{order_id}/notify-shipped [post]
func (h *AdminOrderHandler) NotifyShipped(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var payload request.NotifyShippedRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).ToHTTPError())
		return
	}

	orderID := c.Param("order_id")
	order, err := h.usecase.NotifyShipped(c.Request.Context(), user, orderID, payload.TrackingNote)
	if err != nil {
		log.Printf("[admin][handler] notify-shipped failed order_id=%s err=%v", orderID, err)
		appErr := mapAdminOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

func mapAdminOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Insufficient permissions", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidOrderID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid order id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEmailDeliveryFailure):
		return pkg.NewDomainError("EMAIL_DELIVERY_FAILED", "Order marked shipped but the email could not be sent", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
