package routes

import (
	"storefront/internal/adapter/http/handlers"
	"storefront/internal/adapter/http/middleware"
	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const PathAdmin = "/admin"

func addAdminRoutes(rg *gin.RouterGroup, h *handlers.AdminOrderHandler, auth interfaces.IAuthenticator) {
	admin := rg.Group(PathAdmin, middleware.BearerAuth(auth), middleware.RequireRole(entities.RoleAdmin, entities.RoleStaff))
	{
		admin.POST("/orders/:order_id/notify-shipped", h.NotifyShipped)
	}
}
