package router

import (
	"backend/internal/app/activity"
	"backend/internal/app/board"
	"backend/internal/app/card"
	"backend/internal/app/health"
	"backend/internal/app/list"
	"backend/internal/app/notification"
	"backend/internal/app/session"
	"backend/internal/gateways/websocket"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	Engine *gin.Engine

	public    *gin.RouterGroup
	protected *gin.RouterGroup
}

// NewRouter builds the engine with its middleware chain. Everything under
// /api needs a session except session creation and the health check.
func NewRouter(logger *zap.Logger, sessionSvc session.Service) *Router {
	engine := gin.New()
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.LoggerMiddleware(logger))
	engine.Use(gin.Recovery())

	public := engine.Group("/api")
	protected := engine.Group("/api")
	protected.Use(middleware.SessionAuth(sessionSvc))

	return &Router{
		Engine:    engine,
		public:    public,
		protected: protected,
	}
}

func (r *Router) RegisterHealthRoutes(handler health.Handler) {
	health.RegisterRoutes(r.public, handler)
}

func (r *Router) RegisterWebSocketRoutes(hub *websocket.Hub) {
	websocket.RegisterRoutes(r.Engine, hub)
}

func (r *Router) RegisterSessionRoutes(handler session.Handler) {
	session.RegisterRoutes(r.public, handler)
}

func (r *Router) RegisterBoardRoutes(handler board.Handler) {
	board.RegisterRoutes(r.protected, handler)
}

func (r *Router) RegisterListRoutes(handler list.Handler) {
	list.RegisterRoutes(r.protected, handler)
}

func (r *Router) RegisterCardRoutes(handler card.Handler) {
	card.RegisterRoutes(r.protected, handler)
}

func (r *Router) RegisterActivityRoutes(handler activity.Handler) {
	activity.RegisterRoutes(r.protected, handler)
}

func (r *Router) RegisterNotificationRoutes(handler notification.Handler) {
	notification.RegisterRoutes(r.protected, handler)
}

func (r *Router) RegisterSwaggerRoutes() {
	r.Engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (r *Router) Serve(addr string) error {
	return r.Engine.Run(addr)
}
