// Package router wires the HTTP routes for the service.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"iqx_backend/internal/app/middleware"
	priceshandler "iqx_backend/internal/feature/dailyprices/transport/handler"
	sechandler "iqx_backend/internal/feature/securities/transport/handler"
	"iqx_backend/internal/platform/http/handler"
)

// NewRouter builds the gin engine with all routes registered under the
// given API prefix (normally /api/v1).
func NewRouter(apiPrefix string, securities *sechandler.SecurityHandler, prices *priceshandler.PriceHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(cors.Default())

	r.GET("/", handler.Root)
	r.GET("/healthz", handler.Health)

	v1 := r.Group(apiPrefix)
	{
		v1.POST("/securities", securities.Create)
		v1.GET("/securities", securities.List)
		v1.GET("/securities/:ticker", securities.Get)
		v1.PUT("/securities/:ticker", securities.Update)
		v1.DELETE("/securities/:ticker", securities.Delete)

		v1.POST("/daily-prices", prices.Create)
		v1.GET("/daily-prices", prices.List)
		// The literal "range" segment takes priority over the :time
		// parameter for GET /daily-prices/:ticker/....
		v1.GET("/daily-prices/:ticker/range/:time_range", prices.GetByTimeRange)
		v1.GET("/daily-prices/:ticker/:time", prices.Get)
		v1.PUT("/daily-prices/:ticker/:time", prices.Update)
		v1.DELETE("/daily-prices/:ticker/:time", prices.Delete)
	}

	return r
}
