package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/usermanager/docs"
	"github.com/rafabene/usermanager/internal/domain/ports"
	"github.com/rafabene/usermanager/internal/handlers/dto"
	"github.com/rafabene/usermanager/internal/handlers/middleware"
	"github.com/rafabene/usermanager/internal/infrastructure/i18n"
	"github.com/rafabene/usermanager/internal/infrastructure/metrics"
	"github.com/rafabene/usermanager/internal/infrastructure/notifications"
)

// RouterConfig contém os parâmetros de borda do servidor
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins []string
}

// Dependencies agrupa os componentes montados pelo main. Metrics, Hub e
// RateLimiter são opcionais.
type Dependencies struct {
	Users       *UserHandler
	I18n        *i18n.Service
	Logger      ports.Logger
	Metrics     *metrics.Metrics
	Hub         *notifications.Hub
	RateLimiter *middleware.RateLimiter
}

// RateLimitedResponder escreve o 429 em formato problem e contabiliza a rejeição
func RateLimitedResponder(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m != nil {
			m.RecordRateLimited()
		}
		dto.Abort(c, dto.RateLimitedErrorResponseI18n(c))
	}
}

// NewRouter monta o engine gin com middlewares e rotas
func NewRouter(cfg RouterConfig, deps Dependencies) *gin.Engine {
	dto.RegisterValidators()

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		func(c *gin.Context) {
			c.Set("base_url", cfg.BaseURL)
			c.Next()
		},
		middleware.NewI18nMiddleware(deps.I18n).DetectLanguage(),
		middleware.Recovery(deps.Logger, func(c *gin.Context) {
			dto.Abort(c, dto.InternalErrorResponseI18n(c))
		}),
		middleware.RequestLogger(deps.Logger),
	)
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		dto.Abort(c, dto.NotFoundErrorResponseI18n(c, "Route"))
	})

	router.GET("/health", deps.Users.Health(cfg.Env))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Handler())
	}
	{
		users := v1.Group("/users")
		{
			users.POST("", deps.Users.CreateUser)
			users.GET("", deps.Users.ListUsers)
			users.GET("/facets", deps.Users.Facets)
			users.GET("/analytics", deps.Users.Analytics)
			users.GET("/export", deps.Users.Export)
			users.GET("/:id", deps.Users.GetUser)
			users.PUT("/:id", deps.Users.UpdateUser)
			users.PATCH("/:id", deps.Users.UpdateUser)
			users.DELETE("/:id", deps.Users.DeleteUser)
		}

		if deps.Hub != nil {
			v1.GET("/notifications/ws", gin.WrapF(deps.Hub.ServeWS))
		}
	}

	return router
}
