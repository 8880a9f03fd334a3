package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/handler/api"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	bookingHandler *api.BookingHandler,
	roomHandler *api.RoomHandler,
	hotelHandler *api.HotelHandler,
	userHandler *api.UserHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, bookingHandler, roomHandler, hotelHandler, userHandler, webhookHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	bookingHandler *api.BookingHandler,
	roomHandler *api.RoomHandler,
	hotelHandler *api.HotelHandler,
	userHandler *api.UserHandler,
	webhookHandler *api.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	// Webhooks authenticate via signatures over the raw body, never via
	// bearer tokens.
	engine.POST("/bookings/payment-webhook", bookingHandler.PaymentWebhook)
	engine.POST("/webhooks/identity", webhookHandler.IdentityWebhook)

	bookings := engine.Group("/bookings")
	{
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "/check-availability", Handler: bookingHandler.CheckAvailability},
		})

		authed := bookings.Group("")
		authed.Use(authMiddleware.RequireAuth())
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/book", Handler: bookingHandler.CreateBooking},
			{Method: http.MethodGet, Path: "/user", Handler: bookingHandler.GetUserBookings},
			{Method: http.MethodPost, Path: "/pay", Handler: bookingHandler.Pay},
		})

		owner := bookings.Group("")
		owner.Use(authMiddleware.RequireAuth(), authMiddleware.RequireHotelOwner())
		addRoutes(owner, []route{
			{Method: http.MethodGet, Path: "/hotel", Handler: bookingHandler.GetHotelDashboard},
		})
	}

	rooms := engine.Group("/rooms")
	{
		addRoutes(rooms, []route{
			{Method: http.MethodGet, Path: "", Handler: roomHandler.ListRooms},
		})

		owner := rooms.Group("")
		owner.Use(authMiddleware.RequireAuth(), authMiddleware.RequireHotelOwner())
		addRoutes(owner, []route{
			{Method: http.MethodGet, Path: "/mine", Handler: roomHandler.ListOwnerRooms},
			{Method: http.MethodPost, Path: "", Handler: roomHandler.CreateRoom},
			{Method: http.MethodPatch, Path: "/:id/listing", Handler: roomHandler.ToggleListing},
			{Method: http.MethodPatch, Path: "/:id/price", Handler: roomHandler.ChangePrice},
			{Method: http.MethodPatch, Path: "/:id/amenities", Handler: roomHandler.UpdateAmenities},
		})
	}

	hotels := engine.Group("/hotels")
	hotels.Use(authMiddleware.RequireAuth())
	{
		addRoutes(hotels, []route{
			{Method: http.MethodPost, Path: "", Handler: hotelHandler.Register},
		})
	}

	user := engine.Group("/user")
	user.Use(authMiddleware.RequireAuth())
	{
		addRoutes(user, []route{
			{Method: http.MethodGet, Path: "", Handler: userHandler.GetProfile},
			{Method: http.MethodPost, Path: "/recent-search", Handler: userHandler.StoreRecentSearch},
		})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
