package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigit/schooladmin/internal/app/controllers"
	"github.com/yigit/schooladmin/internal/app/gateway"
	"github.com/yigit/schooladmin/internal/middleware"
	"github.com/yigit/schooladmin/internal/pkg/websocket"
)

// APIPrefix is the mount point of the legacy endpoints
const APIPrefix = "/api"

// GinPath converts a route-table pattern to a gin path
func GinPath(pattern string) string {
	return APIPrefix + "/" + strings.ReplaceAll(pattern, "{id}", ":id")
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	apiController *controllers.APIController,
	healthController *controllers.HealthController,
	feedHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET(APIPrefix+"/health", healthController.Health)

	api := router.Group("")
	api.Use(authMiddleware.ResolveActor())
	{
		api.GET(APIPrefix+"/admin/activity-log/stream", feedHandler.HandleConnection)

		for _, route := range gateway.Routes {
			api.Handle(route.Method, GinPath(route.Pattern), apiController.Handle(route.Op))
		}
	}
}
