package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wedding-booking/internal/domain/booking"
	"wedding-booking/internal/handler/api"
	reqdto "wedding-booking/internal/handler/dto/request"
	"wedding-booking/internal/handler/middleware"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/pkg/errs"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking *api.BookingHandler
	Report  *api.ReportHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, handlers Handlers, authMiddleware *middleware.AuthMiddleware) error {
	if err := registerValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware)
	return nil
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errs.New("gin binding validator is not go-playground/validator")
	}
	return reqdto.RegisterValidators(v)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger.GetSlogLogger()))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger.GetSlogLogger()))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/statuses", api.StatusGraph)

		couple := authMiddleware.RequireRole(booking.RoleCouple)
		vendor := authMiddleware.RequireRole(booking.RoleVendor)

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: []gin.HandlerFunc{couple}},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPatch, Path: "/:id/event-date", Handler: h.Booking.AmendEventDate},
				{Method: http.MethodPost, Path: "/:id/transitions", Handler: h.Booking.Transition},
				{Method: http.MethodPost, Path: "/:id/quote", Handler: h.Booking.SetQuote, Mw: []gin.HandlerFunc{vendor}},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: h.Booking.RecordPayment, Mw: []gin.HandlerFunc{couple}},
				{Method: http.MethodGet, Path: "/:id/receipts", Handler: h.Booking.ListReceipts},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Booking.Complete},
			})
		}

		reports := apiGroup.Group("/reports")
		reports.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reports, []route{
				{Method: http.MethodGet, Path: "/summary", Handler: h.Report.Summary},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
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
