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

var errInvalidContactPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid contact payload", http.StatusBadRequest)

type ContactHandler struct {
	usecase usecase.IContactUseCase
}

func NewContactHandler(uc usecase.IContactUseCase) *ContactHandler {
	return &ContactHandler{usecase: uc}
}

// Submit godoc
// @Summary      Send a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request  body      request.ContactRequest  true  "Message"
// @Success      200      {object}  response.SuccessResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      429      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var payload request.ContactRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidContactPayload.HTTPStatus, errInvalidContactPayload.ToHTTPError())
		return
	}

	if err := h.usecase.Submit(c.Request.Context(), payload.ToMessage()); err != nil {
		appErr := mapContactError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Printf("[contact][handler] submit failed err=%v", err)
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

func mapContactError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidContactMessage):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Name, email, subject and message are required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainErrorSimple("INVALID_EMAIL", "Invalid email address", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmailDeliveryFailure):
		return pkg.NewDomainError("EMAIL_DELIVERY_FAILED", "Failed to send message. Please try again later.", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
