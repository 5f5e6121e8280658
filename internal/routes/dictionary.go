package routes

import (
	"quote-system/internal/controllers"
	"quote-system/pkg/constants"
	"quote-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

// runDictionaryRouter — справочники. Чтение доступно всем
// авторизованным, запись только администратору.
func runDictionaryRouter(
	secureGroup *echo.Group,
	techniqueCtl *controllers.TechniqueController,
	zoneCtl *controllers.ZoneController,
	skuCtl *controllers.SkuController,
	authMW *middleware.AuthMiddleware,
) {
	adminOnly := authMW.RequireRoles(constants.RoleAdmin)

	{
		secureGroup.GET("/techniques", techniqueCtl.GetTechniques)
		secureGroup.GET("/techniques/:id", techniqueCtl.FindTechnique)
		secureGroup.POST("/techniques", techniqueCtl.CreateTechnique, adminOnly)
		secureGroup.PUT("/techniques/:id", techniqueCtl.UpdateTechnique, adminOnly)
		secureGroup.DELETE("/techniques/:id", techniqueCtl.DeleteTechnique, adminOnly)

		secureGroup.GET("/techniques/:id/engine-options", techniqueCtl.GetEngineOptions)
		secureGroup.POST("/techniques/:id/engine-options", techniqueCtl.CreateEngineOption, adminOnly)
		secureGroup.DELETE("/engine-options/:optionId", techniqueCtl.DeleteEngineOption, adminOnly)

		secureGroup.GET("/technique-aliases", techniqueCtl.GetAliases)
		secureGroup.POST("/technique-aliases", techniqueCtl.CreateAlias, adminOnly)
		secureGroup.DELETE("/technique-aliases/:id", techniqueCtl.DeleteAlias, adminOnly)
	}

	{
		secureGroup.GET("/zones", zoneCtl.GetZones)
		secureGroup.POST("/zones", zoneCtl.CreateZone, adminOnly)
		secureGroup.PUT("/zones/:id", zoneCtl.UpdateZone, adminOnly)
		secureGroup.DELETE("/zones/:id", zoneCtl.DeleteZone, adminOnly)
	}

	{
		secureGroup.GET("/skus", skuCtl.GetSkus)
		secureGroup.GET("/skus/:id", skuCtl.FindSku)
		secureGroup.POST("/skus", skuCtl.CreateSku, adminOnly)
		secureGroup.PUT("/skus/:id", skuCtl.UpdateSku, adminOnly)
		secureGroup.DELETE("/skus/:id", skuCtl.DeleteSku, adminOnly)
	}
}
