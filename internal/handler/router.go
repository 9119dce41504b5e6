package handler

import (
	"net/http"

	"gamecenter/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRouter 配置路由
func SetupRouter(h *Handler, log *logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(RecoveryMiddleware(log))
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware())

	api := r.Group("/api/v1")
	{
		members := api.Group("/members")
		{
			members.GET("", h.ListMembers)
			members.POST("", h.CreateMember)
			members.GET("/:id", h.GetMember)
			members.PUT("/:id", h.UpdateMember)
		}

		games := api.Group("/games")
		{
			games.GET("", h.ListGames)
			games.POST("", h.CreateGame)
			games.PUT("/:id", h.UpdateGame)
			games.DELETE("/:id", h.DeleteGame)
		}

		recharges := api.Group("/recharges")
		{
			recharges.GET("", h.ListRecharges)
			recharges.POST("", h.CreateRecharge)
			recharges.PUT("/:id", h.UpdateRecharge)
		}

		transactions := api.Group("/transactions")
		{
			transactions.GET("", h.ListTransactions)
			transactions.POST("", h.CreateTransaction)
			transactions.PUT("/:id", h.UpdateTransaction)
		}

		// 日汇总只读，写入只发生在充值账本里
		collections := api.Group("/collections")
		{
			collections.GET("", h.ListCollections)
			collections.GET("/date/:date", h.GetCollection)
			collections.GET("/total-recharges", h.TotalRecharges)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
