package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"usersapi/docs"
	"usersapi/internal/handlers"
)

// Options toggles the optional parts of the route table.
type Options struct {
	CORSOrigins []string
	AllowSignup bool
}

// NewRouter builds the gin engine. Routes registered after the auth
// middleware require a bearer token.
func NewRouter(env *handlers.Env, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handlers.RequestLogger(env.Log))

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", handlers.Root())
	r.GET("/health", handlers.Health(env))
	r.POST("/login", handlers.Login(env))
	if opts.AllowSignup {
		r.POST("/users", handlers.CreateUser(env))
	}

	api := r.Group("/")
	api.Use(handlers.AuthMiddleware(env))
	api.POST("/logout", handlers.Logout(env))
	api.GET("/users", handlers.ListUsers(env))
	if !opts.AllowSignup {
		api.POST("/users", handlers.CreateUser(env))
	}
	api.GET("/users/:id", handlers.GetUser(env))
	api.PATCH("/users/:id", handlers.PatchUser(env))
	api.DELETE("/users/:id", handlers.DeleteUser(env))

	return r
}
