package api

import (
	stdhttp "net/http"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	h "busfleet/internal/http/handlers"
	"busfleet/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logrus.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authed := middleware.AuthRequired(h.ParseToken)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes-index", h.RoutesIndex)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", authed, h.Me)

		// Passenger surface
		api.GET("/search-buses", h.SearchBuses)
		api.GET("/routes/:id/stops", h.GetRouteStops)
		api.POST("/book", authed, h.BookSeats)

		bookings := api.Group("/bookings", authed)
		bookings.GET("/mine", h.GetMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/ticket", h.GetBookingTicket)

		// Admin
		admin := api.Group("/admin", authed, middleware.RequireRoles(domain.RoleAdmin))
		mountAdmin(admin)
	}

	h.SetRouter(r)
	return r
}

func mountAdmin(g *gin.RouterGroup) {
	buses := g.Group("/buses")
	buses.GET("", h.GetBuses)
	buses.GET("/:id", h.GetBusByID)
	buses.POST("", h.SaveBus)
	buses.PUT("/:id", h.UpdateBus)
	buses.DELETE("/:id", h.DeleteBus)

	routes := g.Group("/routes")
	routes.GET("", h.GetRoutes)
	routes.GET("/:id", h.GetRouteByID)
	routes.GET("/:id/distances", h.GetRouteDistances)
	routes.POST("", h.CreateRoute)
	routes.PUT("/:id", h.UpdateRoute)
	routes.DELETE("/:id", h.DeleteRoute)

	g.GET("/assignments", h.GetAssignments)
	g.POST("/assign-bus", h.AssignBus)
	g.PUT("/reassign-bus", h.ReassignBus)
	g.DELETE("/deassign-bus/:routeId", h.DeassignBus)

	g.GET("/staff-roles", h.GetStaffRoles)
	g.POST("/staff-roles", h.CreateStaffRole)

	staff := g.Group("/staff")
	staff.GET("", h.GetStaff)
	staff.POST("", h.CreateStaff)
	staff.PUT("/:id", h.UpdateStaff)
	staff.DELETE("/:id", h.DeleteStaff)

	g.POST("/bus-staff", h.AssignBusStaff)
	g.GET("/bus-staff/:busId", h.GetBusStaff)

	g.GET("/fuel", h.GetFuelRecords)
	g.POST("/fuel", h.CreateFuelRecord)

	g.GET("/reports/dashboard", h.GetDashboard)
}
