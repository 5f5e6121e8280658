package routes

import (
	"quote-system/internal/controllers"
	"quote-system/pkg/constants"
	"quote-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runQuoteRouter(secureGroup *echo.Group, ctl *controllers.QuoteController, authMW *middleware.AuthMiddleware) {
	{
		secureGroup.GET("/quotes", ctl.GetQuotes)
		secureGroup.POST("/quotes", ctl.CreateQuote, authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin))
		secureGroup.GET("/quotes/:id", ctl.FindQuote)
		secureGroup.PUT("/quotes/:id", ctl.UpdateQuote, authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin))

		secureGroup.POST("/quotes/:id/calculate", ctl.Calculate, authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin))
		secureGroup.POST("/quotes/:id/status", ctl.ChangeStatus, authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin))
		secureGroup.POST("/quotes/:id/warehouse/confirm", ctl.WarehouseConfirm, authMW.RequireRoles(constants.RoleWarehouse, constants.RoleAdmin))

		secureGroup.GET("/quotes/:id/result", ctl.GetResultLines)
		secureGroup.PATCH("/quotes/:id/result/:lineId", ctl.PatchResultLine)
		secureGroup.GET("/quotes/:id/calc-runs", ctl.GetCalcRuns)
		secureGroup.POST("/quotes/:id/export/xlsx", ctl.ExportXLSX)
	}
}
