package components

import (
	"wedding-booking/internal/handler"
	"wedding-booking/internal/handler/api"
	"wedding-booking/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
		func(b *api.BookingHandler, r *api.ReportHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Report: r}
		},
	),
	fx.Invoke(handler.NewRouter),
)
