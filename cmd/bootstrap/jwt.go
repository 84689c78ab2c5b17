package bootstrap

import (
	"time"

	"wedding-booking/internal/handler/middleware"
	"wedding-booking/internal/pkg/config"
	"wedding-booking/internal/pkg/errs"
	"wedding-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_DURATION")
	}
	return jwt.NewService(cfg.JWT.Secret, duration, cfg.JWT.Issuer), nil
}
