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

type NewsletterHandler struct {
	usecase usecase.INewsletterUseCase
}

func NewNewsletterHandler(uc usecase.INewsletterUseCase) *NewsletterHandler {
	return &NewsletterHandler{usecase: uc}
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Subscribing an address twice is not an error.
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request  body      request.NewsletterRequest  true  "Subscriber"
// @Success      200      {object}  response.SuccessResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      429      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Router       /newsletter [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var payload request.NewsletterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := mapNewsletterError(usecase.ErrInvalidEmail)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.usecase.Subscribe(c.Request.Context(), payload.Email); err != nil {
		appErr := mapNewsletterError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Printf("[newsletter][handler] subscribe failed err=%v", err)
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

func mapNewsletterError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainErrorSimple("INVALID_EMAIL", "A valid email is required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSubscriptionFailure):
		return pkg.NewDomainError("SUBSCRIBE_FAILED", "Failed to subscribe", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
