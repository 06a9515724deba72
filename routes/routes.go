package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"YSFinancials/controllers"
	_ "YSFinancials/docs"
	"YSFinancials/middleware"
	"YSFinancials/pkg/config"
	"YSFinancials/pkg/metrics"
	"YSFinancials/pkg/ratelimit"
)

// Deps is everything the router needs from the outside.
type Deps struct {
	Config    *config.Config
	Submitter controllers.Submitter
	Limiter   ratelimit.Limiter
	Log       *zap.Logger
}

// NewRouter builds the engine with the full middleware chain and routes.
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(d.Config.TrustedProxies); err != nil {
		return nil, err
	}

	r.Use(
		middleware.Recovery(d.Log),
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.SecurityHeaders(),
	)
	if d.Config.MetricsEnabled {
		r.Use(metrics.Middleware())
	}
	r.Use(
		middleware.OriginGate(d.Config.AllowedOrigins, d.Log),
		middleware.CORS(d.Config.AllowedOrigins),
		middleware.RateLimit(d.Limiter, d.Log),
	)

	RegisterRoutes(r, d)
	return r, nil
}

// RegisterRoutes mounts the public routes plus the opt-in operational ones.
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", controllers.Health())
	r.POST("/contact", controllers.SubmitContact(d.Submitter))

	if d.Config.MetricsEnabled {
		r.GET("/metrics", metrics.Handler())
	}
	if d.Config.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
