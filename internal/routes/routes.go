package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"quote-system/internal/controllers"
	"quote-system/internal/repositories"
	"quote-system/internal/services"
	"quote-system/pkg/config"
	"quote-system/pkg/middleware"
	"quote-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn)
	quoteRepo := repositories.NewQuoteRepository(dbConn, logger)
	lineRepo := repositories.NewResultLineRepository(dbConn)
	ruleRepo := repositories.NewRuleRepository(dbConn)
	calcRunRepo := repositories.NewCalcRunRepository(dbConn)
	techniqueRepo := repositories.NewTechniqueRepository(dbConn)
	zoneRepo := repositories.NewZoneRepository(dbConn)
	skuRepo := repositories.NewSkuRepository(dbConn)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger, &cfg.Auth)
	quoteService := services.NewQuoteService(txManager, quoteRepo, lineRepo, logger, &cfg.Quote)
	calcService := services.NewCalcEngineService(txManager, quoteRepo, lineRepo, ruleRepo, calcRunRepo, techniqueRepo, logger)
	exportService := services.NewExportService(quoteRepo, lineRepo, userRepo, logger)
	ruleService := services.NewRuleService(ruleRepo, skuRepo, logger)
	techniqueService := services.NewTechniqueService(techniqueRepo, logger)
	zoneService := services.NewZoneService(zoneRepo, cacheRepo, logger, &cfg.Quote)
	skuService := services.NewSkuService(skuRepo, logger)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, logger)
	quoteController := controllers.NewQuoteController(quoteService, calcService, exportService, logger)
	ruleController := controllers.NewRuleController(ruleService, logger)
	techniqueController := controllers.NewTechniqueController(techniqueService, logger)
	zoneController := controllers.NewZoneController(zoneService, logger)
	skuController := controllers.NewSkuController(skuService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController, authMW)
	runQuoteRouter(secureGroup, quoteController, authMW)
	runRuleRouter(secureGroup, ruleController, authMW)
	runDictionaryRouter(secureGroup, techniqueController, zoneController, skuController, authMW)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
