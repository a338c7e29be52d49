package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the explorer handlers into a gin engine.
func NewRouter(handler *ExplorerHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", handler.Health)

	v1 := engine.Group("/api/v1")
	{
		blocks := v1.Group("/blocks")
		{
			blocks.GET("/latest", handler.LatestBlocks)
			blocks.GET("/height/:height", handler.BlockByHeight)
			blocks.GET("/:hash", handler.BlockByHash)
		}

		v1.GET("/txs/:txid", handler.TransactionByID)
		v1.GET("/price/latest", handler.LatestPrice)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return engine
}
