package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parseldesk/backoffice/internal/server/handlers"
)

// Handlers bundles the route handlers wired into the engine.
type Handlers struct {
	Auth        *handlers.AuthHandler
	DCs         *handlers.DCHandler
	Agents      *handlers.AgentHandler
	Collections *handlers.CollectionHandler
	Expenses    *handlers.ExpenseHandler
	Tasks       *handlers.TaskHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, verifier TokenVerifier, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "message": "Route not found"})
	})

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", h.Auth.Register)
		authRoutes.POST("/login", h.Auth.Login)
	}

	api := r.Group("/api")
	api.Use(requireAuth(verifier, logger))
	{
		api.GET("/auth/me", h.Auth.Me)
		api.PUT("/auth/profile", h.Auth.UpdateProfile)

		api.GET("/dcs", h.DCs.List)
		api.POST("/dcs", h.DCs.Create)
		api.GET("/dcs/:id", h.DCs.Get)
		api.PUT("/dcs/:id", h.DCs.Update)
		api.DELETE("/dcs/:id", h.DCs.Delete)

		api.GET("/delivery-agents", h.Agents.List)
		api.POST("/delivery-agents", h.Agents.Create)
		api.GET("/delivery-agents/stats/overview", h.Agents.Stats)
		api.GET("/delivery-agents/:id", h.Agents.Get)
		api.PUT("/delivery-agents/:id", h.Agents.Update)
		api.PATCH("/delivery-agents/:id/status", h.Agents.UpdateStatus)
		api.DELETE("/delivery-agents/:id", h.Agents.Delete)
		api.GET("/delivery-agents/:id/performance", h.Agents.Performance)

		api.GET("/cash-collections", h.Collections.List)
		api.POST("/cash-collections", h.Collections.Create)
		api.GET("/cash-collections/reports/daily", h.Collections.DailyReport)
		api.GET("/cash-collections/stats/overview", h.Collections.Stats)

		api.GET("/expenses", h.Expenses.List)
		api.POST("/expenses", h.Expenses.Create)
		api.GET("/expenses/stats/overview", h.Expenses.Stats)
		api.GET("/expenses/reports/monthly", h.Expenses.MonthlyReport)
		api.GET("/expenses/:id", h.Expenses.Get)
		api.PUT("/expenses/:id", h.Expenses.Update)
		api.DELETE("/expenses/:id", h.Expenses.Delete)

		api.GET("/tasks", h.Tasks.List)
		api.POST("/tasks", h.Tasks.Create)
		api.GET("/tasks/:id", h.Tasks.Get)
		api.PUT("/tasks/:id", h.Tasks.Update)
		api.PATCH("/tasks/:id/status", h.Tasks.UpdateStatus)
		api.DELETE("/tasks/:id", h.Tasks.Delete)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
