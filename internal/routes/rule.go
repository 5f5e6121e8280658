package routes

import (
	"quote-system/internal/controllers"
	"quote-system/pkg/constants"
	"quote-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runRuleRouter(secureGroup *echo.Group, ctl *controllers.RuleController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)
	{
		secureGroup.GET("/rules", ctl.GetRules)
		secureGroup.GET("/rules/:id", ctl.FindRule)
		secureGroup.POST("/rules", ctl.CreateRule, adminOnly)
		secureGroup.PUT("/rules/:id", ctl.UpdateRule, adminOnly)
		secureGroup.DELETE("/rules/:id", ctl.DeleteRule, adminOnly)
	}
}
