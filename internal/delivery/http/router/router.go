// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"gamestore/internal/delivery/http/middleware"
	"gamestore/internal/delivery/http/router/handler"
	"gamestore/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	AccountHandler      *handler.AccountHandler
	GameHandler         *handler.GameHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	accountHandler      *handler.AccountHandler
	gameHandler         *handler.GameHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		accountHandler:      params.AccountHandler,
		gameHandler:         params.GameHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes. The token-consuming endpoints stay public: the opaque
	// token in the link IS the proof of identity.
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/confirm-email", r.authHandler.ConfirmEmail)
		authGroup.POST("/password-reset/request", r.authHandler.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", r.authHandler.ConfirmPasswordReset)
		authGroup.POST("/email-change/confirm", r.authHandler.ConfirmEmailChange)
	}

	// Email change start needs a logged-in caller.
	authGroup.POST("/email-change/request", r.authHandler.RequestEmailChange, r.authMiddleware.Authenticate)

	// Administrative account management.
	accountGroup := e.Group("/accounts")
	accountGroup.Use(r.authMiddleware.Authenticate)
	accountGroup.Use(r.authMiddleware.RequireProfileType(entity.ProfileTypeAdmin.String()))
	{
		accountGroup.POST("", r.accountHandler.Create)
		accountGroup.GET("", r.accountHandler.List)
		accountGroup.GET("/:id", r.accountHandler.Get)
		accountGroup.PUT("/:id", r.accountHandler.Update)
		accountGroup.DELETE("/:id", r.accountHandler.Delete)
		accountGroup.POST("/:id/block", r.accountHandler.Block)
		accountGroup.POST("/:id/unblock", r.accountHandler.Unblock)
		accountGroup.POST("/:id/ban", r.accountHandler.Ban)
	}

	// Catalog: reads are public, writes are admin-only.
	gameGroup := e.Group("/games")
	{
		gameGroup.GET("", r.gameHandler.List)
		gameGroup.GET("/:id", r.gameHandler.Get)
	}

	adminOnly := []echo.MiddlewareFunc{
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireProfileType(entity.ProfileTypeAdmin.String()),
	}
	gameGroup.POST("", r.gameHandler.Create, adminOnly...)
	gameGroup.PUT("/:id", r.gameHandler.Update, adminOnly...)
	gameGroup.DELETE("/:id", r.gameHandler.Delete, adminOnly...)
}
