package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mIRRONEL/4-tier-app/internal/api/http/handler"
	"github.com/mIRRONEL/4-tier-app/internal/api/http/middleware"
	"github.com/mIRRONEL/4-tier-app/internal/logger"
	"github.com/mIRRONEL/4-tier-app/internal/service"
)

// Router wires HTTP routes, handlers and middleware.
type Router struct {
	sessionService *service.Session
	itemService    *service.Items
	corsOrigin     string
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	sessionService *service.Session,
	itemService *service.Items,
	corsOrigin string,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessionService: sessionService,
		itemService:    itemService,
		corsOrigin:     corsOrigin,
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	logging := middleware.NewLogging(r.logger)
	engine.Use(logging.Handle)
	engine.Use(middleware.CORS(r.corsOrigin))

	authenticate := middleware.NewAuthenticate(r.sessionService, r.logger)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend is running!"})
	})

	authHandler := handler.NewAuth(r.sessionService, r.logger)
	auth := engine.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authenticate.Handle, authHandler.Logout)
	}

	itemHandler := handler.NewItems(r.itemService, r.logger)
	items := engine.Group("/items", authenticate.Handle)
	{
		items.GET("", itemHandler.List)
		items.GET("/search", itemHandler.Search)
		items.POST("", itemHandler.Create)
		items.DELETE("/:id", itemHandler.Delete)
	}

	return engine
}
