package routes

import (
	"net/http"

	coreport "github.com/auctionly/auction-processor/internal/domain/port/core"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/handler"
	"github.com/auctionly/auction-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/auctionly/auction-processor/internal/infrastructure/observability"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	lifecycleHandler *handler.LifecycleHandler,
	settlementHandler *handler.SettlementHandler,
	connectHandler *handler.ConnectHandler,
	throttleHandler *handler.ThrottleHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	api := router.Group("/api/v1")
	{
		auctions := api.Group("/auctions")
		{
			auctions.POST("/:auctionId/end", lifecycleHandler.EndAuction)
			auctions.POST("/:auctionId/checkout", settlementHandler.CreateCheckout)
			auctions.POST("/:auctionId/bid-allowance", throttleHandler.CheckBidAllowance)
		}

		connect := api.Group("/connect")
		{
			connect.POST("/onboarding", connectHandler.Onboard)
			connect.GET("/dashboard", connectHandler.Dashboard)
		}

		api.POST("/contact", throttleHandler.SubmitContact)

		api.POST("/maintenance/sweep", lifecycleHandler.RunSweep)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
