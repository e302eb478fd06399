package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-api/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas. Solo se
// confía en X-Forwarded-For cuando viene de uno de trustedProxies.
func NewRouter(
	logger *zap.Logger,
	trustedProxies []string,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	userH *UserHandler,
	postH *PostHandler,
	healthH *HealthHandler,
) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		logger.Warn("invalid trusted proxies, ignoring forwarded headers", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), recoveryMiddleware(logger), jsonContentTypeMiddleware())

	r.GET("/", func(c *gin.Context) {
		respondMessage(c, http.StatusOK, "welcome to our website")
	})
	r.GET("/healthz", healthH.Check)

	auth := r.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.GET("/me", JWTAuthMiddleware(jwtSvc), authH.Me)

	users := r.Group("/users")
	users.GET("/:userId", userH.Profile)
	users.POST("/follow/:userId", userH.Follow)
	users.POST("/unfollow/:userId", userH.Unfollow)
	// Ruta histórica con mayúscula; los clientes existentes la usan.
	users.POST("/Unfollow/:userId", userH.Unfollow)

	posts := r.Group("/posts")
	posts.GET("", postH.List)
	posts.GET("/:id", postH.Get)
	posts.POST("/:userId", postH.Create)
	posts.POST("/like/:id", postH.Like)
	posts.PUT("/edit/:id", postH.Update)
	posts.POST("/comment/:id", postH.AddComment)
	posts.DELETE("/delete/:id", postH.Delete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// recoveryMiddleware convierte un panic en el 500 genérico de la API.
func recoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": genericErrorMessage})
	})
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
