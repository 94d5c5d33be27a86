package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LandWatch-App/internal/application"
	"LandWatch-App/internal/logging"
	"LandWatch-App/internal/observability"
)

// RouterDeps ルーターが必要とするハンドラー群
type RouterDeps struct {
	Logger        logging.Logger
	Metrics       *observability.Collector
	AuthService   application.AuthService
	Auth          *AuthHandler
	Locations     *LocationsHandler
	Data          *DataHandler
	Notifications *NotificationsHandler
	Grid          *GridHandler
	Satellites    *SatellitesHandler
}

// NewRouter APIルーターを組み立てる
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "LandWatch-App"})
	})

	bearer := BearerAuth(d.AuthService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/sign-up", d.Auth.SignUp)
		authGroup.POST("/sign-in", d.Auth.SignIn)
		authGroup.POST("/refresh", d.Auth.Refresh)
		authGroup.POST("/me", d.Auth.MeFromToken)
		authGroup.GET("/me", bearer, d.Auth.Me)
		authGroup.GET("/protected", bearer, d.Auth.Protected)
		authGroup.POST("/location", bearer, d.Locations.SaveLocation)
		authGroup.GET("/last-location", bearer, d.Locations.LastLocation)
	}

	data := r.Group("/data", bearer)
	{
		data.GET("/get-landsat-data", d.Data.LandsatData)
		data.GET("/scenes", d.Data.Scenes)
		data.GET("/events", d.Data.Events)
		data.POST("/add-event", d.Data.AddEvent)
		data.POST("/passes", d.Data.Passes)
		data.GET("/notifications", d.Notifications.List)
		data.POST("/notifications/:id/read", d.Notifications.MarkRead)
	}

	grid := r.Group("/grid")
	{
		grid.GET("/wrs2", d.Grid.Lookup)
		grid.GET("/wrs2/:path/:row", d.Grid.Cell)
	}

	r.GET("/satellites/positions", d.Satellites.Positions)

	return r
}
