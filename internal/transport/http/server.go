package http

import (
	"fmt"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmarkelov/supportchat-server/internal/auth"
	"github.com/dmarkelov/supportchat-server/internal/config"
	"github.com/dmarkelov/supportchat-server/internal/core"
	"github.com/dmarkelov/supportchat-server/internal/store"
)

// Deps bundles everything the HTTP layer serves.
type Deps struct {
	Registry    *core.Registry
	Router      *core.Router
	Replayer    *core.Replayer
	AuthService *auth.Service
	Store       store.Store
	Operator    core.Operator
}

// NewServer builds the HTTP server: WebSocket relay plus the REST API.
func NewServer(deps Deps, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), LoggerMiddleware(logger))

	engine.GET("/health", healthHandler)
	engine.GET("/ws", gin.WrapH(NewWSHandler(deps.Registry, deps.Router, deps.Replayer, logger)))

	api := NewAPIHandlers(deps.AuthService, deps.Store, deps.Operator, cfg.HistoryLimit, logger)
	engine.POST("/api/login", api.Login)
	engine.POST("/api/subscribe", api.Subscribe)

	admin := engine.Group("/api/admin", AuthMiddleware(deps.AuthService, logger))
	admin.GET("/rooms", api.AdminRooms)
	admin.GET("/messages", api.AdminMessages)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	fmt.Fprint(c.Writer, "ok")
}
