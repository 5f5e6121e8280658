package routes

import (
	"quote-system/internal/controllers"
	"quote-system/pkg/constants"
	"quote-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, ctl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	api.POST("/auth/login", ctl.Login)
	api.POST("/auth/refresh", ctl.Refresh)

	secureGroup.GET("/auth/me", ctl.Me)

	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/users", ctl.GetUsers, adminOnly)
		secureGroup.POST("/users", ctl.CreateUser, adminOnly)
		secureGroup.PATCH("/users/:id/active", ctl.SetUserActive, adminOnly)
	}
}
