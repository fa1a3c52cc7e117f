// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account routes. Reads and registration are public; mutations require a
	// valid token and happen only on the caller's own account.
	users := e.Group("/users")
	{
		users.POST("", r.userHandler.Register)
		users.GET("", r.userHandler.List)
		users.GET("/:id", r.userHandler.GetByID)
		users.POST("/login", r.userHandler.Login)
		users.PUT("/:id", r.userHandler.Update, r.authMiddleware.Authenticate)
		users.DELETE("/:id", r.userHandler.Delete, r.authMiddleware.Authenticate)
	}

	e.POST("/avatar", r.userHandler.UploadAvatar, r.authMiddleware.Authenticate)
	e.GET("/password/:email", r.userHandler.RecoverPassword)
}
