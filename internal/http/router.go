package api

import (
	"database/sql"
	"log/slog"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "busadmin/internal/config"
	"busadmin/internal/domain/models"
	h "busadmin/internal/http/handlers"
	"busadmin/internal/http/middleware"
)

var (
	staffRoles = []string{string(models.RoleAdmin), string(models.RoleStaff)}
	adminRoles = []string{string(models.RoleAdmin)}
)

func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	hd := h.New(db, env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	api.GET("/health", hd.Health)
	api.GET("/db-check", hd.DBCheck)

	auth := api.Group("/auth")
	auth.POST("/login", hd.Login)

	// Everything below needs a token; reads are open to any signed-in
	// dashboard user, writes to admin and staff.
	authed := api.Group("", middleware.Auth(hd.TokenParser()))
	write := middleware.RequireRoles(staffRoles...)
	adminOnly := middleware.RequireRoles(adminRoles...)

	authed.GET("/routes-table", adminOnly, hd.RoutesTable)
	authed.GET("/auth/profile", hd.Profile)
	authed.PUT("/auth/profile", hd.UpdateProfile)

	users := authed.Group("/users", adminOnly)
	users.GET("", hd.ListUsers)
	users.GET("/:id", hd.GetUser)
	users.POST("", hd.CreateUser)
	users.PUT("/:id", hd.UpdateUser)
	users.PUT("/:id/status", hd.SetUserStatus)
	users.DELETE("/:id", hd.DeleteUser)

	stations := authed.Group("/stations")
	stations.GET("", hd.ListStations)
	stations.GET("/cities", hd.StationCities)
	stations.GET("/code-suggestion", hd.SuggestStationCode)
	stations.GET("/:id", hd.GetStation)
	stations.POST("", write, hd.CreateStation)
	stations.PUT("/:id", write, hd.UpdateStation)
	stations.DELETE("/:id", write, hd.DeleteStation)

	routes := authed.Group("/routes")
	routes.GET("", hd.ListRoutes)
	routes.GET("/code-suggestion", hd.SuggestRoute)
	routes.GET("/:id", hd.GetRoute)
	routes.POST("", write, hd.CreateRoute)
	routes.PUT("/:id", write, hd.UpdateRoute)
	routes.DELETE("/:id", write, hd.DeleteRoute)

	buses := authed.Group("/buses")
	buses.GET("", hd.ListBuses)
	buses.GET("/:id", hd.GetBus)
	buses.POST("", write, hd.CreateBus)
	buses.PUT("/:id", write, hd.UpdateBus)
	buses.DELETE("/:id", write, hd.DeleteBus)

	drivers := authed.Group("/drivers")
	drivers.GET("", hd.ListDrivers)
	drivers.GET("/:id", hd.GetDriver)
	drivers.POST("", write, hd.CreateDriver)
	drivers.PUT("/:id", write, hd.UpdateDriver)
	drivers.DELETE("/:id", write, hd.DeleteDriver)

	trips := authed.Group("/trips")
	trips.GET("", hd.ListTrips)
	trips.GET("/availability", hd.TripAvailability)
	trips.GET("/:id", hd.GetTrip)
	trips.GET("/:id/seats", hd.TripSeats)
	trips.GET("/:id/manifest", hd.TripManifest)
	trips.POST("", write, hd.CreateTrip)
	trips.PUT("/:id", write, hd.UpdateTrip)
	trips.DELETE("/:id", write, hd.DeleteTrip)

	bookings := authed.Group("/bookings")
	bookings.GET("", hd.ListBookings)
	bookings.GET("/:id", hd.GetBooking)
	bookings.GET("/:id/e-ticket", hd.BookingETicket)
	bookings.PUT("/:id/cancel", write, hd.CancelBooking)

	authed.GET("/dashboard/summary", hd.DashboardSummary)

	h.SetRouter(r)
	return r
}
